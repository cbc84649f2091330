package indexer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/adapters/jsonl"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports/mocks"
	"go.trai.ch/moveiface/internal/engine/indexer"
	"go.uber.org/mock/gomock"
)

const legacyStream = `{"resolved_package_id":"0x2","ok":true,"error":null}
{"resolved_package_id":"0x3","ok":false,"error":"rpc_normalized_modules_error: rpc timeout"}

{"package_id":"0x4","ok":false,"error":{"stage":"local","kind":"not_found","message":"local package not found"}}
{"resolved_package_id":"0x2","ok":true,"error":null}
{"ok":false,"stackless_error":"rpc_normalized_modules_error: rpc timeout"}
{"resolved_package_id":"0x5","ok":fal`

func TestBuild(t *testing.T) {
	a, err := indexer.Build(context.Background(), strings.NewReader(legacyStream), "legacy.jsonl")
	require.NoError(t, err)

	assert.Equal(t, indexer.Meta{SourceJSONL: "legacy.jsonl", Rows: 5, OK: 2, Error: 3}, a.Meta)
	assert.Equal(t, map[string]int{
		"0x2":                    1,
		"0x3":                    2,
		"0x4":                    3,
		indexer.MissingPackageID: 5,
	}, a.ByPackageID, "ids map to the row they first appear in")
	assert.Equal(t, map[string]int{
		"rpc_normalized_modules_error: rpc timeout": 2,
		"local package not found":                   1,
	}, a.Errors)
}

func TestBuild_Empty(t *testing.T) {
	a, err := indexer.Build(context.Background(), strings.NewReader(""), "empty.jsonl")
	require.NoError(t, err)
	assert.Zero(t, a.Meta.Rows)
	assert.NotNil(t, a.ByPackageID)
	assert.NotNil(t, a.Errors)
}

func TestBuild_RejectsGarbage(t *testing.T) {
	for name, input := range map[string]string{
		"not json": "{\"ok\":true}\nnot json\n",
		"array":    "[1,2]\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := indexer.Build(context.Background(), strings.NewReader(input), "x.jsonl")
			require.ErrorContains(t, err, domain.ErrReportUnreadable.Error())
		})
	}
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := indexer.Build(ctx, strings.NewReader("{}\n"), "x.jsonl")
	require.ErrorIs(t, err, context.Canceled)
}

func TestIndex_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "legacy.jsonl")
	require.NoError(t, os.WriteFile(source, []byte(legacyStream), 0o600))

	out := filepath.Join(dir, "index")
	a, err := indexer.New(jsonl.NewFactory()).Index(context.Background(), source, out)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Meta.Rows)

	g := goldie.New(t)
	for _, name := range []string{indexer.ByPackageIDFile, indexer.ErrorsFile} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err)
		g.Assert(t, strings.TrimSuffix(name, ".json"), data)
	}

	meta, err := os.ReadFile(filepath.Join(out, indexer.MetaFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"source_jsonl":"`+source+`","rows":5,"ok":2,"error":3}`, string(meta))
}

func TestIndex_MissingSource(t *testing.T) {
	_, err := indexer.New(jsonl.NewFactory()).Index(context.Background(), filepath.Join(t.TempDir(), "nope.jsonl"), t.TempDir())
	require.ErrorContains(t, err, domain.ErrInputUnreadable.Error())
}

func TestWrite_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockOutputFactory(ctrl)
	doc := mocks.NewMockDocumentWriter(ctrl)

	out.EXPECT().NewDocument(filepath.Join("idx", indexer.MetaFile)).Return(doc)
	doc.EXPECT().Put(gomock.Any()).Return(os.ErrPermission)

	err := indexer.New(out).Write(&indexer.Artifacts{}, "idx")
	require.ErrorContains(t, err, "failed to write index artifact")
}
