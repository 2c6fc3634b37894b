package analysis

import "github.com/yaklabco/gomlcheck/pkg/config"

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by issue count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortBySeverity sorts by severity (errors first).
	SortBySeverity SortField = "severity"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeDiagnostics includes the flat diagnostics list.
	IncludeDiagnostics bool

	// IncludeByFile includes the per-file breakdown of files with issues.
	IncludeByFile bool

	// IncludeByKind includes the per-kind breakdown.
	IncludeByKind bool

	// IncludeByDirectory includes the per-directory breakdown.
	IncludeByDirectory bool

	// SortBy specifies how to sort ByFile and ByKind.
	SortBy SortField

	// SortDesc sorts counts in descending order (highest first).
	SortDesc bool

	// KindFormat controls how diagnostic kinds appear.
	KindFormat config.KindFormat

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with every view enabled.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByKind:      true,
		IncludeByDirectory: true,
		SortBy:             SortByCount,
		SortDesc:           true,
		KindFormat:         config.KindFormatID,
	}
}
