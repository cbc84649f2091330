package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the optional run configuration file.
	ConfigFileName = "moveiface.yaml"

	// DefaultOutputDir is the directory run artifacts are written to.
	DefaultOutputDir = "out"

	// ReportFileName is the detailed per-package stream.
	ReportFileName = "report.jsonl"

	// IndexFileName is the per-package presence stream.
	IndexFileName = "index.jsonl"

	// ProblemsFileName holds the failing or mismatching subset of the report stream.
	ProblemsFileName = "problems.jsonl"

	// LegacyFileName is the compact inventory stream.
	LegacyFileName = "legacy.jsonl"

	// SummaryFileName is the corpus summary document.
	SummaryFileName = "summary.json"

	// CheckpointFileName stores resume state next to the streams.
	CheckpointFileName = ".checkpoint.mp"

	// IndexMetaFileName, IndexByIDFileName and IndexErrorsFileName are the
	// artifacts rebuilt from an existing report stream.
	IndexMetaFileName   = "meta.json"
	IndexByIDFileName   = "by_package_id.json"
	IndexErrorsFileName = "errors.json"

	// DefaultDatasetRoot is used when neither the config nor SUI_PACKAGES_DIR names a dataset.
	DefaultDatasetRoot = "../sui-packages"

	// DefaultDatasetLayout is the sub-directory of the dataset root holding mainnet packages.
	DefaultDatasetLayout = "packages/mainnet_most_used"

	// DefaultRPCURL is the public mainnet fullnode.
	DefaultRPCURL = "https://fullnode.mainnet.sui.io:443"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// StreamPath joins an artifact name onto the output directory.
func StreamPath(dir, name string) string {
	return filepath.Join(dir, name)
}
