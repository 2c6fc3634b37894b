package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/runner"
)

const globalDividerWidth = 49

func itoa(n int) string {
	return strconv.Itoa(n)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (3 errors, 2 warnings) in 2 files, 12 files checked".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf("%d %s checked", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))

	if stats.IssuesTotal == 0 {
		msg := s.Success.Render("No issues found") + " (" + checked + ")"
		if stats.FilesErrored > 0 {
			msg += ", " + s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored))
		}
		return msg + "\n"
	}

	var severityParts []string
	if errors := stats.IssuesBySeverity[config.SeverityError]; errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errors, plural(errors, "error", "errors"))))
	}
	if warnings := stats.IssuesBySeverity[config.SeverityWarning]; warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}
	if infos := stats.IssuesBySeverity[config.SeverityInfo]; infos > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", infos)))
	}

	main := fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		main += " (" + strings.Join(severityParts, ", ") + ")"
	}
	main += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"))

	parts := []string{main, checked}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatFileStats formats the statistics block printed after a file's
// diagnostics.
func (s *Styles) FormatFileStats(outcome runner.FileOutcome) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "--- Statistics (Format: %s, Encoding: %s) ---\n",
		s.SummaryValue.Render(outcome.Detection.Mode.String()),
		s.SummaryValue.Render(string(outcome.Encoding)),
	)
	fmt.Fprintf(&builder, "Total tags: %d, Total issues: %d\n", outcome.Result.TagCount, len(outcome.Issues))

	return builder.String()
}

// FormatDirectoryStats formats the totals of one scanned directory.
func (s *Styles) FormatDirectoryStats(dir runner.DirStats) string {
	var builder strings.Builder

	builder.WriteString(s.SummaryTitle.Render(fmt.Sprintf("--- Directory Summary (%s):", dir.Dir)) + "\n")
	builder.WriteString("  Files Scanned:      " + itoa(dir.FilesScanned) + "\n")
	builder.WriteString("  Files with Issues:  " + s.Count(dir.FilesWithIssues) + "\n")
	builder.WriteString("  Total Tags Found:   " + itoa(dir.TagsTotal) + "\n")
	builder.WriteString("  Total Issues Found: " + itoa(dir.IssuesTotal) + "\n")

	return builder.String()
}

// FormatGlobalStats formats the totals of a whole run.
func (s *Styles) FormatGlobalStats(stats runner.Stats) string {
	var builder strings.Builder

	divider := strings.Repeat("=", globalDividerWidth)

	builder.WriteString(divider + "\n")
	builder.WriteString("--- " + s.Banner.Render("GLOBAL SCAN SUMMARY") + " ---\n")
	builder.WriteString("Total Files Scanned:       " + itoa(stats.FilesProcessed) + "\n")
	builder.WriteString("Total Tags Found:          " + itoa(stats.TagsTotal) + "\n")
	builder.WriteString("Total Files with Issues:   " + s.Count(stats.FilesWithIssues) + "\n")
	builder.WriteString("Total Issues Found:        " + itoa(stats.IssuesTotal) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("Files Not Readable:        " + s.Failure.Render(itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString(divider + "\n")

	return builder.String()
}
