package domain

// InputQuery names the sources a run collects package ids from.
type InputQuery struct {
	// PackageIDs are ids given directly on the command line.
	PackageIDs []string
	// IDFiles hold one id per line; blank lines and # comments are skipped.
	IDFiles []string
	// CatalogFiles are MVR catalog.json documents.
	CatalogFiles []string
	// Network selects the catalog id field, "mainnet" or "testnet".
	Network string
	// ReportFiles are report or legacy JSONL streams of an earlier run.
	ReportFiles []string
	// Discover enumerates every package of Dataset.
	Discover bool
	Dataset  DatasetConfig
	// MaxPackages truncates the merged list when positive.
	MaxPackages int
}
