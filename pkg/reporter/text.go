package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomlcheck/internal/ui/pretty"
	"github.com/yaklabco/gomlcheck/pkg/analysis"
	"github.com/yaklabco/gomlcheck/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No matching files found to scan."))
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file, len(result.Files) == 1)
	}

	if r.opts.ShowStats && len(result.Files) > 1 {
		r.reportStats(result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's issues and returns how many it wrote.
func (r *TextReporter) reportFile(file runner.FileOutcome, single bool) int {
	path := analysis.RelativePath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprint(r.bw, r.styles.FormatFileError(path, file.Error))
		return 0
	}

	if len(file.Issues) > 0 {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Issues)))

		var lines []string
		if r.opts.ShowContext {
			lines = pretty.SplitLines(file.Text)
		}
		for _, issue := range file.Issues {
			fmt.Fprint(r.bw, r.styles.FormatIssue(path, issue, pretty.LineAt(lines, issue.Pos.Line), r.opts.KindFormat))
		}

		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowStats && single {
		fmt.Fprint(r.bw, r.styles.FormatFileStats(file))
		fmt.Fprintln(r.bw)
	}

	return len(file.Issues)
}

// reportStats writes the per-directory and global statistics blocks.
func (r *TextReporter) reportStats(result *runner.Result) {
	for _, dir := range result.Stats.Directories {
		dir.Dir = analysis.RelativePath(dir.Dir, r.opts.WorkingDir)
		fmt.Fprint(r.bw, r.styles.FormatDirectoryStats(dir))
		fmt.Fprintln(r.bw)
	}
	fmt.Fprint(r.bw, r.styles.FormatGlobalStats(result.Stats))
}
