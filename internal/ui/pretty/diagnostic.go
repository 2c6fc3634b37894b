package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/config"
	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/runner"
)

const (
	// contextIndent aligns source context under the diagnostic line.
	contextIndent = "        "
	tabWidth      = 4
)

// FormatIssue formats a single issue for terminal output.
func (s *Styles) FormatIssue(path string, issue runner.Issue, sourceLine string, kindFormat config.KindFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), issue.Pos.Line, issue.Pos.Column)
	kind := s.Kind.Render("(" + config.FormatKind(kindFormat, issue.Kind) + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(issue.Severity),
		s.Message.Render(issue.Message),
		kind,
	)

	if sourceLine != "" && issue.Pos.Column > 0 {
		builder.WriteString(s.FormatSourceContext(sourceLine, issue.Pos.Column))
	}

	if issue.Kind == markup.MismatchedClose && issue.OpenPos != issue.Pos {
		builder.WriteString(contextIndent + s.Note.Render(fmt.Sprintf("<%s> was opened at %s", issue.Tag, issue.OpenPos)) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column.
// Columns count runes; tabs are expanded so the caret lines up.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	expanded := strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	builder.WriteString(contextIndent + s.SourceLine.Render(expanded) + "\n")

	width := 0
	idx := 1
	for _, r := range line {
		if idx >= column {
			break
		}
		if r == '\t' {
			width += tabWidth
		} else {
			width++
		}
		idx++
	}
	width += max(0, column-idx)

	builder.WriteString(contextIndent + strings.Repeat(" ", width) + s.Caret.Render("^") + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}

// FormatFileError formats a file that could not be checked.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(path), s.Error.Render(fmt.Sprintf("error: %v", err)))
}

// SplitLines splits text into lines without their terminators, so source
// context can be looked up per diagnostic without rescanning the document.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// LineAt returns the 1-based line lineNum, or "" if it does not exist.
func LineAt(lines []string, lineNum int) string {
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
