package extractor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/adapters/extractor"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const minimalInterface = `{"modules":[{"address":"0xabc","name":"vault","structs":[],"functions":[]}]}`

var pkgID = domain.MustParsePackageID("0xabc")

type fixture struct {
	dataset *extractor.Dataset
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ds := extractor.NewDataset(domain.DatasetConfig{Root: t.TempDir(), Layout: domain.DefaultDatasetLayout})
	f := &fixture{dataset: ds, dir: ds.ArtifactDir(pkgID)}
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, extractor.BytecodeDirName), domain.DirPerm))
	return f
}

func (f *fixture) write(t *testing.T, rel, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, rel), []byte(content), domain.FilePerm))
}

func TestDataset_ArtifactDir(t *testing.T) {
	ds := extractor.NewDataset(domain.DatasetConfig{Root: "/data", Layout: "packages/mainnet_most_used"})
	suffix := "cd" + strings.Repeat("0", 58) + "ef"
	id := domain.MustParsePackageID("0xab" + suffix)

	assert.Equal(t, "/data/packages/mainnet_most_used/0xab/"+suffix, ds.ArtifactDir(id))
}

func TestDataset_Open(t *testing.T) {
	f := newFixture(t)
	f.write(t, "metadata.json", `{"originalPackageId":"0xdef"}`)
	f.write(t, "bytecode_modules/vault.mv", "abcd")
	f.write(t, "bytecode_modules/admin.mv", "ef")
	f.write(t, "bytecode_modules/README", "ignored")

	art, err := f.dataset.Open(pkgID)
	require.NoError(t, err)

	assert.Equal(t, domain.MustParsePackageID("0xdef").String(), art.OriginalID)
	assert.Equal(t, []string{"admin", "vault"}, art.Modules)
	assert.Equal(t, int64(6), art.ModuleBytes)
}

func TestDataset_OpenWithoutMetadataUsesPackageID(t *testing.T) {
	f := newFixture(t)

	art, err := f.dataset.Open(pkgID)
	require.NoError(t, err)
	assert.Equal(t, pkgID.String(), art.OriginalID)
}

func TestDataset_OpenMissing(t *testing.T) {
	ds := extractor.NewDataset(domain.DatasetConfig{Root: t.TempDir(), Layout: "x"})

	_, err := ds.Open(pkgID)
	require.ErrorIs(t, err, domain.ErrExtractionNotFound)
}

func TestDataset_Discover(t *testing.T) {
	ds := extractor.NewDataset(domain.DatasetConfig{Root: t.TempDir(), Layout: domain.DefaultDatasetLayout})
	for _, rel := range []string{"0xff/" + "01", "0x0a/" + "02", "0x0a/" + "01", "notes/x"} {
		require.NoError(t, os.MkdirAll(filepath.Join(ds.Base(), rel), domain.DirPerm))
	}
	require.NoError(t, os.WriteFile(filepath.Join(ds.Base(), "0x0a", "stray.txt"), nil, domain.FilePerm))

	ids, err := ds.Discover(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x0a01", "0x0a02", "0xff01"}, ids)

	ids, err = ds.Discover(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x0a01", "0x0a02"}, ids)
}

func TestDumpExtractor(t *testing.T) {
	f := newFixture(t)
	f.write(t, extractor.InterfaceFileName, minimalInterface)
	f.write(t, "bytecode_modules/vault.mv", "abcd")

	raw, err := extractor.NewDumpExtractor(f.dataset).Extract(t.Context(), pkgID)
	require.NoError(t, err)

	assert.Equal(t, pkgID.String(), raw.OriginalID)
	require.Len(t, raw.Modules, 1)
	assert.Equal(t, "vault", raw.Modules[0].Name)
	require.NotNil(t, raw.Stats)
	assert.Equal(t, 1, raw.Stats.BytecodeModules)
}

func TestDumpExtractor_Errors(t *testing.T) {
	f := newFixture(t)
	dump := extractor.NewDumpExtractor(f.dataset)

	_, err := dump.Extract(t.Context(), pkgID)
	require.ErrorIs(t, err, domain.ErrExtractionNotFound)

	f.write(t, extractor.InterfaceFileName, "{not json")
	_, err = dump.Extract(t.Context(), pkgID)
	require.ErrorIs(t, err, domain.ErrExtractionDecode)
}

func newCommand(t *testing.T, f *fixture, script string, timeout time.Duration) *extractor.CommandExtractor {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return extractor.NewCommandExtractor(f.dataset, []string{"sh", "-c", script, "extract"}, timeout, log)
}

func TestCommandExtractor(t *testing.T) {
	f := newFixture(t)
	f.write(t, "local.json", minimalInterface)

	cmd := newCommand(t, f, `test -d "$1" && cat "$1/../local.json"`, time.Minute)
	raw, err := cmd.Extract(t.Context(), pkgID)
	require.NoError(t, err)

	assert.Equal(t, "vault", raw.Modules[0].Name)
	assert.Equal(t, pkgID.String(), raw.OriginalID)
	require.NotNil(t, raw.Stats)
}

func TestCommandExtractor_Failures(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		timeout time.Duration
		want    error
	}{
		{"exit failure", `echo "bad bytecode" >&2; exit 3`, time.Minute, domain.ErrExtractionDecode},
		{"panic", `echo "thread 'main' panicked at src/lib.rs:10:5" >&2; exit 101`, time.Minute, domain.ErrTranslationPanic},
		{"timeout", `exec sleep 5`, 50 * time.Millisecond, domain.ErrExtractionTimeout},
		{"garbage output", `echo nope`, time.Minute, domain.ErrExtractionDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := newCommand(t, f, tt.script, tt.timeout).Extract(t.Context(), pkgID)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCommandExtractor_MissingArtifact(t *testing.T) {
	ds := extractor.NewDataset(domain.DatasetConfig{Root: t.TempDir(), Layout: "x"})
	cmd := extractor.NewCommandExtractor(ds, []string{"true"}, time.Second, nil)

	_, err := cmd.Extract(t.Context(), pkgID)
	require.ErrorIs(t, err, domain.ErrExtractionNotFound)
}

func TestFactory(t *testing.T) {
	factory := extractor.NewFactory(nil)

	cfg := domain.DefaultConfig()
	ex, err := factory.NewExtractor(cfg)
	require.NoError(t, err)
	assert.IsType(t, &extractor.DumpExtractor{}, ex)

	cfg.Extractor.Mode = domain.ExtractorCommand
	cfg.Extractor.Command = []string{"move-iface"}
	ex, err = factory.NewExtractor(cfg)
	require.NoError(t, err)
	assert.IsType(t, &extractor.CommandExtractor{}, ex)

	cfg.Extractor.Mode = "wasm"
	_, err = factory.NewExtractor(cfg)
	require.Error(t, err)
}
