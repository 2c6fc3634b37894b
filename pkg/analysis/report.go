// Package analysis turns a runner result into the pre-computed views shared
// by every reporter.
package analysis

import "time"

// Report contains pre-computed views of a run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Files lists every checked file in path order, including clean ones.
	Files []FileEntry `json:"files"`

	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile groups issues by file path. Only files with issues appear.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind groups issues by diagnostic kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// ByDirectory groups files by their directory, in directory order.
	ByDirectory []DirectoryAnalysis `json:"byDirectory,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// FileEntry describes how a single file was checked.
type FileEntry struct {
	Path       string `json:"path"`
	Mode       string `json:"mode,omitempty"`
	ModeSource string `json:"modeSource,omitempty"`
	Encoding   string `json:"encoding,omitempty"`
	Tags       int    `json:"tags"`
	Issues     int    `json:"issues"`
	Error      string `json:"error,omitempty"`
}

// DiagnosticEntry represents a single issue in the report.
type DiagnosticEntry struct {
	FilePath   string `json:"filePath"`
	Kind       string `json:"kind"`
	KindID     string `json:"kindId"`
	KindName   string `json:"kindName"`
	Severity   string `json:"severity"`
	Tag        string `json:"tag,omitempty"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	OpenLine   int    `json:"openLine"`
	OpenColumn int    `json:"openColumn"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesFailed     int `json:"filesFailed"`
	Directories     int `json:"directories"`
	Tags            int `json:"totalTags"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any error-severity issues.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Kinds    []string `json:"kinds,omitempty"`
}

// KindAnalysis contains aggregated data for a single diagnostic kind.
type KindAnalysis struct {
	Kind     string   `json:"kind"`
	KindID   string   `json:"kindId"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Files    []string `json:"files,omitempty"`
}

// DirectoryAnalysis contains aggregated data for one directory.
type DirectoryAnalysis struct {
	Path            string `json:"path"`
	FilesScanned    int    `json:"filesScanned"`
	FilesWithIssues int    `json:"filesWithIssues"`
	Issues          int    `json:"issues"`
	Tags            int    `json:"tags"`
}
