package runner

import (
	"path/filepath"
	"sort"

	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/decode"
	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/sniff"
	"github.com/yaklabco/gomlcheck/pkg/validate"
)

// Issue is a diagnostic after per-kind configuration has been applied.
type Issue struct {
	markup.Diagnostic

	Severity config.Severity `json:"severity"`
}

// FileOutcome is the result of checking a single file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Text is the decoded document, kept for source context in reports.
	Text string

	// Size is the number of bytes read.
	Size int64

	// Encoding is the encoding the file was decoded with.
	Encoding decode.Encoding

	// Detection records the mode and how it was chosen.
	Detection sniff.Result

	// Result is the raw validation result, including disabled kinds.
	Result validate.Result

	// Issues are the enabled diagnostics with their severity, in document order.
	Issues []Issue

	// Error is set if the file could not be processed.
	Error error
}

// Dir returns the directory containing the file.
func (o FileOutcome) Dir() string {
	return filepath.Dir(o.Path)
}

// Errors returns the number of error-severity issues.
func (o FileOutcome) Errors() int {
	return o.countSeverity(config.SeverityError)
}

// Warnings returns the number of warning-severity issues.
func (o FileOutcome) Warnings() int {
	return o.countSeverity(config.SeverityWarning)
}

func (o FileOutcome) countSeverity(severity config.Severity) int {
	n := 0
	for _, issue := range o.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// DirStats aggregates the files checked in one directory.
type DirStats struct {
	Dir             string
	FilesScanned    int
	FilesWithIssues int
	IssuesTotal     int
	TagsTotal       int
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully checked.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int

	// IssuesTotal is the number of issues across all files.
	IssuesTotal int

	// TagsTotal is the number of opening tags across all files.
	TagsTotal int

	// BytesRead is the raw size of every file read.
	BytesRead int64

	// IssuesBySeverity maps severity levels to counts.
	IssuesBySeverity map[config.Severity]int

	// IssuesByKind maps diagnostic kind IDs to counts.
	IssuesByKind map[string]int

	// FilesByMode counts processed files per detected mode ("HTML", "XML").
	FilesByMode map[string]int

	// Directories holds per-directory totals, sorted by directory.
	Directories []DirStats
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any error-severity issues occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesBySeverity[config.SeverityError] > 0
}

// HasWarnings reports whether any warning-severity issues occurred.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any issues were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// HasFileErrors reports whether any file could not be processed.
func (r *Result) HasFileErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// NewResult aggregates outcomes checked outside a Run, such as a document
// read from standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)

	dirs := make(map[string]*DirStats)
	for _, outcome := range outcomes {
		result.accumulate(outcome, dirs)
	}
	result.finish(dirs)

	return result
}

func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[config.Severity]int),
		IssuesByKind:     make(map[string]int),
		FilesByMode:      make(map[string]int),
	}
}

// accumulate updates the result with a file outcome. dirs collects
// per-directory totals until finish is called.
func (r *Result) accumulate(outcome FileOutcome, dirs map[string]*DirStats) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BytesRead += outcome.Size
	r.Stats.TagsTotal += outcome.Result.TagCount
	r.Stats.FilesByMode[outcome.Detection.Mode.String()]++

	dir := dirs[outcome.Dir()]
	if dir == nil {
		dir = &DirStats{Dir: outcome.Dir()}
		dirs[outcome.Dir()] = dir
	}
	dir.FilesScanned++
	dir.TagsTotal += outcome.Result.TagCount

	if len(outcome.Issues) == 0 {
		return
	}

	r.Stats.FilesWithIssues++
	r.Stats.IssuesTotal += len(outcome.Issues)
	dir.FilesWithIssues++
	dir.IssuesTotal += len(outcome.Issues)

	for _, issue := range outcome.Issues {
		r.Stats.IssuesBySeverity[issue.Severity]++
		r.Stats.IssuesByKind[issue.Kind.ID()]++
	}
}

func (r *Result) finish(dirs map[string]*DirStats) {
	r.Stats.Directories = make([]DirStats, 0, len(dirs))
	for _, dir := range dirs {
		r.Stats.Directories = append(r.Stats.Directories, *dir)
	}
	sort.Slice(r.Stats.Directories, func(i, j int) bool {
		return r.Stats.Directories[i].Dir < r.Stats.Directories[j].Dir
	})
}
