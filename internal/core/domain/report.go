package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// OutputMode selects which per-package projections a run writes.
type OutputMode string

const (
	// OutputDetailed writes the report, index and problems streams.
	OutputDetailed OutputMode = "detailed"
	// OutputLegacy writes only the legacy stream.
	OutputLegacy OutputMode = "legacy"
	// OutputBoth writes every stream.
	OutputBoth OutputMode = "both"
)

// ParseOutputMode validates a mode name. An empty name selects OutputDetailed.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputDetailed:
		return OutputDetailed, nil
	case OutputLegacy:
		return OutputLegacy, nil
	case OutputBoth:
		return OutputBoth, nil
	default:
		return "", zerr.With(ErrConfigInvalid, "output_mode", s)
	}
}

// Detailed reports whether the detailed streams are written.
func (m OutputMode) Detailed() bool {
	return m == OutputDetailed || m == OutputBoth
}

// Legacy reports whether the legacy stream is written.
func (m OutputMode) Legacy() bool {
	return m == OutputLegacy || m == OutputBoth
}

// SideCounts summarizes one normalized side of a comparison.
type SideCounts struct {
	InterfaceCounts
	Extractor *ExtractorStats `json:"extractor_stats,omitempty"`
}

// ModuleDiff is the module-level set difference of a package.
type ModuleDiff struct {
	MissingInRight []string `json:"missing_in_right"`
	ExtraInRight   []string `json:"extra_in_right"`
	Common         []string `json:"common"`
	WithDiffs      []string `json:"with_diffs"`
}

// PackageReport is one record of the detailed report stream.
// Comparison fields are nil when the package failed or comparison was disabled.
type PackageReport struct {
	PackageID           string       `json:"package_id"`
	OK                  bool         `json:"ok"`
	Error               *ErrorRecord `json:"error"`
	Local               *SideCounts  `json:"local,omitempty"`
	RPC                 *SideCounts  `json:"rpc,omitempty"`
	Modules             *ModuleDiff  `json:"modules,omitempty"`
	DiffSummary         DiffSummary  `json:"diff_summary,omitempty"`
	MismatchCount       *int         `json:"mismatch_count,omitempty"`
	Mismatches          []Mismatch   `json:"mismatches,omitempty"`
	MismatchesTruncated bool         `json:"mismatches_truncated,omitempty"`
}

// IsProblem reports whether the record belongs to the problems stream.
func (r *PackageReport) IsProblem() bool {
	return r.Error != nil || !r.OK
}

// IndexRecord is one record of the index stream.
type IndexRecord struct {
	PackageID string `json:"package_id"`
	Line      int    `json:"line"`
	OK        bool   `json:"ok"`
	HasError  bool   `json:"has_error"`
}

// LegacyRecord is the compact per-package row of the inventory verifier.
type LegacyRecord struct {
	ResolvedPackageID   string         `json:"resolved_package_id"`
	OK                  bool           `json:"ok"`
	Error               *string        `json:"error"`
	ModulesMissingLocal []string       `json:"modules_missing_local"`
	ModulesMissingRPC   []string       `json:"modules_missing_rpc"`
	ModulesWithDiffs    []string       `json:"modules_with_diffs"`
	DiffSummary         map[string]int `json:"diff_summary"`
}

// SampleInfo describes the sample a run was restricted to.
type SampleInfo struct {
	Requested  int    `json:"requested"`
	Selected   int    `json:"selected"`
	Population int    `json:"population"`
	Seed       uint64 `json:"seed"`
}

// Summary is the corpus-wide aggregate of a run.
// Comparison counters are nil when comparison is disabled.
type Summary struct {
	Mode                OutputMode    `json:"mode"`
	Inputs              int           `json:"inputs"`
	Total               int           `json:"total"`
	LocalOK             int           `json:"local_ok"`
	ComparisonEnabled   bool          `json:"comparison_enabled"`
	RPCOK               *int          `json:"rpc_ok,omitempty"`
	InterfaceMatch      *int          `json:"interface_match,omitempty"`
	MismatchingPackages *int          `json:"mismatching_packages,omitempty"`
	TotalMismatches     *int          `json:"total_mismatches,omitempty"`
	DiffSummary         DiffSummary   `json:"diff_summary,omitempty"`
	Problems            int           `json:"problems"`
	ErrorsByStage       map[Stage]int `json:"errors_by_stage"`
	Sample              *SampleInfo   `json:"sample,omitempty"`
	Complete            bool          `json:"complete"`
}

// NewSummary returns a zeroed summary. Comparison counters are allocated
// only when comparison is enabled so they serialize as absent otherwise.
func NewSummary(mode OutputMode, comparison bool) *Summary {
	s := &Summary{
		Mode:              mode,
		ComparisonEnabled: comparison,
		ErrorsByStage:     make(map[Stage]int),
	}
	if comparison {
		s.RPCOK = new(int)
		s.InterfaceMatch = new(int)
		s.MismatchingPackages = new(int)
		s.TotalMismatches = new(int)
		s.DiffSummary = make(DiffSummary)
	}
	return s
}
