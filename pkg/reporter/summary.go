package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gomlcheck/internal/ui/pretty"
	"github.com/yaklabco/gomlcheck/pkg/analysis"
	"github.com/yaklabco/gomlcheck/pkg/config"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	tables *pretty.TableFormatter
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &SummaryRenderer{
		opts:   opts,
		styles: styles,
		tables: pretty.NewTableFormatter(styles, terminalWidth(opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 && report.Totals.FilesFailed == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found")+
			r.styles.Dim.Render(" ("+countNoun(report.Totals.Files, "file", "files")+" checked)"))
		return nil
	}

	sections := []string{
		r.kindTable(report.ByKind),
		r.directoryTable(report.ByDirectory),
		r.fileTable(report.ByFile),
	}
	for _, section := range sections {
		if section == "" {
			continue
		}
		fmt.Fprintln(r.out, section)
	}

	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) kindTable(kinds []analysis.KindAnalysis) string {
	columns := []pretty.Column{
		{Header: "Kind"},
		{Header: "Count", Align: pretty.AlignRight},
		{Header: "Errors", Align: pretty.AlignRight},
		{Header: "Warnings", Align: pretty.AlignRight},
		{Header: "Info", Align: pretty.AlignRight},
		{Header: "Files", Align: pretty.AlignRight},
	}

	rows := make([]pretty.TableRow, 0, len(kinds))
	for _, kind := range kinds {
		rows = append(rows, pretty.TableRow{
			Cells: []string{
				kind.Kind,
				strconv.Itoa(kind.Issues),
				strconv.Itoa(kind.Errors),
				strconv.Itoa(kind.Warnings),
				strconv.Itoa(kind.Infos),
				strconv.Itoa(len(kind.Files)),
			},
			Severity: worst(kind.Errors, kind.Warnings, kind.Infos),
		})
	}

	return r.tables.FormatTable("Kinds Summary", columns, rows)
}

func (r *SummaryRenderer) directoryTable(dirs []analysis.DirectoryAnalysis) string {
	columns := []pretty.Column{
		{Header: "Directory", Flexible: true},
		{Header: "Files", Align: pretty.AlignRight},
		{Header: "With issues", Align: pretty.AlignRight},
		{Header: "Tags", Align: pretty.AlignRight},
		{Header: "Issues", Align: pretty.AlignRight},
	}

	rows := make([]pretty.TableRow, 0, len(dirs))
	for _, dir := range dirs {
		row := pretty.TableRow{
			Cells: []string{
				dir.Path,
				strconv.Itoa(dir.FilesScanned),
				strconv.Itoa(dir.FilesWithIssues),
				strconv.Itoa(dir.Tags),
				strconv.Itoa(dir.Issues),
			},
		}
		if dir.Issues > 0 {
			row.Severity = config.SeverityWarning
		}
		rows = append(rows, row)
	}

	return r.tables.FormatTable("Directories Summary", columns, rows)
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) string {
	columns := []pretty.Column{
		{Header: "File", Flexible: true},
		{Header: "Count", Align: pretty.AlignRight},
		{Header: "Errors", Align: pretty.AlignRight},
		{Header: "Warnings", Align: pretty.AlignRight},
		{Header: "Kinds"},
	}

	rows := make([]pretty.TableRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, pretty.TableRow{
			Cells: []string{
				file.Path,
				strconv.Itoa(file.Issues),
				strconv.Itoa(file.Errors),
				strconv.Itoa(file.Warnings),
				strings.Join(file.Kinds, ", "),
			},
			Severity: worst(file.Errors, file.Warnings, file.Infos),
		})
	}

	return r.tables.FormatTable("Files Summary", columns, rows)
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	line := countNoun(totals.Issues, "issue", "issues")

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(countNoun(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(countNoun(totals.Warnings, "warning", "warnings")))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}

	line += fmt.Sprintf(" in %s, %s in %s checked",
		countNoun(totals.FilesWithIssues, "file", "files"),
		countNoun(totals.Tags, "tag", "tags"),
		countNoun(totals.Files, "file", "files"),
	)

	if totals.FilesFailed > 0 {
		line += ", " + r.styles.Failure.Render(fmt.Sprintf("%d unreadable", totals.FilesFailed))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

func countNoun(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

// worst returns the most severe level with a non-zero count.
func worst(errors, warnings, infos int) config.Severity {
	switch {
	case errors > 0:
		return config.SeverityError
	case warnings > 0:
		return config.SeverityWarning
	case infos > 0:
		return config.SeverityInfo
	default:
		return ""
	}
}

// terminalWidth returns the width of writer's terminal, or a default.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
