package jsonl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/adapters/jsonl"
	"go.trai.ch/moveiface/internal/core/domain"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriter_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "index.jsonl")
	w, err := jsonl.Create(path, false)
	require.NoError(t, err)

	require.NoError(t, w.Append(domain.IndexRecord{PackageID: "0x2", Line: 1, OK: true}))
	first := w.Offset()
	require.NoError(t, w.Append(domain.IndexRecord{PackageID: "0x3", Line: 2, HasError: true}))
	require.NoError(t, w.Close())

	content := readFile(t, path)
	assert.Equal(t, int64(len(content)), w.Offset())
	assert.Equal(t, int64(strings.Index(content, "\n")+1), first)

	g := goldie.New(t)
	g.Assert(t, "index_stream", []byte(content))
}

func TestWriter_KeepsTypeSignaturesVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.jsonl")
	w, err := jsonl.Create(path, false)
	require.NoError(t, err)

	coin := domain.StructType("0x2", "coin", "Coin", domain.TypeParam(0))
	require.NoError(t, w.Append(domain.Mismatch{
		Category: domain.CategoryFunctionSignatureMismatch,
		Module:   "coin",
		Kind:     domain.EntityFunction,
		Entity:   "split",
		Left:     coin,
		Right:    domain.Reference(coin, true),
	}))
	require.NoError(t, w.Close())

	content := readFile(t, path)
	assert.Contains(t, content, `"left":"0x2::coin::Coin<T0>"`)
	assert.Contains(t, content, `"right":"&mut 0x2::coin::Coin<T0>"`)
	assert.NotContains(t, content, `\u003c`)
	assert.Equal(t, int64(len(content)), w.Offset())
}

func TestWriter_ResumeAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.jsonl")

	w, err := jsonl.Create(path, false)
	require.NoError(t, err)
	require.NoError(t, w.Append(map[string]int{"n": 1}))
	keep := w.Offset()
	require.NoError(t, w.Append(map[string]int{"n": 2}))
	require.NoError(t, w.Close())

	w, err = jsonl.Create(path, true)
	require.NoError(t, err)
	assert.Positive(t, w.Offset())

	require.NoError(t, w.Truncate(keep))
	require.NoError(t, w.Append(map[string]int{"n": 3}))
	require.NoError(t, w.Close())

	assert.Equal(t, "{\"n\":1}\n{\"n\":3}\n", readFile(t, path))

	w, err = jsonl.Create(path, false)
	require.NoError(t, err)
	assert.Zero(t, w.Offset(), "a fresh run starts empty")
	require.NoError(t, w.Close())
}

func TestWriter_AppendUnencodable(t *testing.T) {
	w, err := jsonl.Create(filepath.Join(t.TempDir(), "x.jsonl"), false)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	err = w.Append(func() {})
	require.ErrorContains(t, err, domain.ErrStreamWrite.Error())
	assert.Zero(t, w.Offset())
}

func TestLines(t *testing.T) {
	input := "{\"a\":1}\n\n  {\"a\":2}  \n{\"a\":"

	var got []jsonl.Line
	for line, err := range jsonl.Lines(strings.NewReader(input)) {
		require.NoError(t, err)
		got = append(got, line)
	}

	require.Len(t, got, 2, "blank lines and the torn tail are skipped")
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 3, got[1].Number)
	assert.Equal(t, `{"a":2}`, string(got[1].Data))
}

func TestDocument_Put(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.json")
	doc := jsonl.NewDocument(path)

	require.NoError(t, doc.Put(map[string]int{"total": 1}))
	require.NoError(t, doc.Put(map[string]int{"total": 2}))

	assert.JSONEq(t, `{"total":2}`, readFile(t, path))

	require.NoError(t, doc.Put(map[string]int{"<missing>": 3}))
	assert.Equal(t, "{\n  \"<missing>\": 3\n}\n", readFile(t, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()
	f := jsonl.NewFactory()

	s, err := f.OpenStream(filepath.Join(dir, "a.jsonl"), false)
	require.NoError(t, err)
	require.NoError(t, s.Append(1))
	require.NoError(t, s.Close())

	require.NoError(t, f.NewDocument(filepath.Join(dir, "b.json")).Put([]int{1}))
	assert.Equal(t, "1\n", readFile(t, filepath.Join(dir, "a.jsonl")))
}
