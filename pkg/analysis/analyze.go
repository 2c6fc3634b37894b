package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// RelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func RelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// bump increments the counter matching severity.
func bump(severity config.Severity, errors, warnings, infos *int) {
	switch severity {
	case config.SeverityError:
		*errors++
	case config.SeverityWarning:
		*warnings++
	case config.SeverityInfo:
		*infos++
	}
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	opts      Options
	kindMap   map[string]*KindAnalysis
	fileMap   map[string]*FileAnalysis
	kindFiles map[string]map[string]bool
	fileKinds map[string]map[string]bool
}

func newAnalysisContext(opts Options) *analysisContext {
	return &analysisContext{
		opts:      opts,
		kindMap:   make(map[string]*KindAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		kindFiles: make(map[string]map[string]bool),
		fileKinds: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileKinds[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) kind(id, label string) *KindAnalysis {
	if _, ok := ctx.kindMap[id]; !ok {
		ctx.kindMap[id] = &KindAnalysis{Kind: label, KindID: id}
		ctx.kindFiles[id] = make(map[string]bool)
	}
	return ctx.kindMap[id]
}

// Analyze transforms a runner.Result into a Report in a single pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext(opts)

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := RelativePath(file.Path, opts.WorkingDir)

		entry := FileEntry{Path: displayPath}
		if file.Error != nil {
			report.Totals.FilesFailed++
			entry.Error = file.Error.Error()
			report.Files = append(report.Files, entry)
			continue
		}

		entry.Mode = file.Detection.Mode.String()
		entry.ModeSource = string(file.Detection.Source)
		entry.Encoding = string(file.Encoding)
		entry.Tags = file.Result.TagCount
		entry.Issues = len(file.Issues)
		report.Files = append(report.Files, entry)
		report.Totals.Tags += file.Result.TagCount

		if len(file.Issues) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++
		ctx.addIssues(report, displayPath, file.Issues)
	}

	if opts.IncludeByKind {
		report.ByKind = ctx.buildByKind()
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile()
	}

	report.Totals.Directories = len(result.Stats.Directories)
	if opts.IncludeByDirectory {
		for _, dir := range result.Stats.Directories {
			report.ByDirectory = append(report.ByDirectory, DirectoryAnalysis{
				Path:            RelativePath(dir.Dir, opts.WorkingDir),
				FilesScanned:    dir.FilesScanned,
				FilesWithIssues: dir.FilesWithIssues,
				Issues:          dir.IssuesTotal,
				Tags:            dir.TagsTotal,
			})
		}
	}

	return report
}

func (ctx *analysisContext) addIssues(report *Report, path string, issues []runner.Issue) {
	fa := ctx.file(path)

	for _, issue := range issues {
		id := issue.Kind.ID()
		label := config.FormatKind(ctx.opts.KindFormat, issue.Kind)

		report.Totals.Issues++
		bump(issue.Severity, &report.Totals.Errors, &report.Totals.Warnings, &report.Totals.Infos)

		fa.Issues++
		bump(issue.Severity, &fa.Errors, &fa.Warnings, &fa.Infos)
		ctx.fileKinds[path][label] = true

		ka := ctx.kind(id, label)
		ka.Issues++
		bump(issue.Severity, &ka.Errors, &ka.Warnings, &ka.Infos)
		ctx.kindFiles[id][path] = true

		if ctx.opts.IncludeDiagnostics {
			report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
				FilePath:   path,
				Kind:       label,
				KindID:     id,
				KindName:   issue.Kind.String(),
				Severity:   string(issue.Severity),
				Tag:        issue.Tag,
				Message:    issue.Message,
				Line:       issue.Pos.Line,
				Column:     issue.Pos.Column,
				OpenLine:   issue.OpenPos.Line,
				OpenColumn: issue.OpenPos.Column,
			})
		}
	}
}

func (ctx *analysisContext) buildByKind() []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kindMap))
	for id, ka := range ctx.kindMap {
		for f := range ctx.kindFiles[id] {
			ka.Files = append(ka.Files, f)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	slices.SortFunc(result, func(left, right KindAnalysis) int {
		return compareEntries(ctx.opts, left.Kind, right.Kind,
			[3]int{left.Errors, left.Warnings, left.Issues},
			[3]int{right.Errors, right.Warnings, right.Issues})
	})
	return result
}

func (ctx *analysisContext) buildByFile() []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		for k := range ctx.fileKinds[path] {
			fa.Kinds = append(fa.Kinds, k)
		}
		slices.Sort(fa.Kinds)
		result = append(result, *fa)
	}
	slices.SortFunc(result, func(left, right FileAnalysis) int {
		return compareEntries(ctx.opts, left.Path, right.Path,
			[3]int{left.Errors, left.Warnings, left.Issues},
			[3]int{right.Errors, right.Warnings, right.Issues})
	})
	return result
}

// compareEntries orders two breakdown rows. counts holds errors, warnings and
// total issues. Ties always fall back to the name so output is stable.
func compareEntries(opts Options, leftName, rightName string, left, right [3]int) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
		// Alphabetical sorting is always ascending.
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right[0], left[0]),
			cmp.Compare(right[1], left[1]),
			cmp.Compare(right[2], left[2]),
		)
	default:
		result = cmp.Compare(left[2], right[2])
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(leftName, rightName))
}
