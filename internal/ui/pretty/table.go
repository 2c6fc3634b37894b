package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomlcheck/pkg/config"
)

// Table formatting constants.
const (
	tableGap         = 2
	defaultTermWidth = 100
	minFlexWidth     = 12
	ellipsis         = "…"
	heavySeparator   = "─"
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one column of a table.
type Column struct {
	Header string
	Align  Align

	// Flexible columns shrink when the table is wider than the terminal.
	// Their cells are truncated from the left, keeping the end of paths.
	Flexible bool
}

// TableRow is one row of cells. Severity colours the first cell.
type TableRow struct {
	Cells    []string
	Severity config.Severity
}

// TableFormatter renders aligned tables that fit the terminal width.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTable renders a titled table. It returns "" when there are no rows.
func (t *TableFormatter) FormatTable(title string, columns []Column, rows []TableRow) string {
	if len(rows) == 0 || len(columns) == 0 {
		return ""
	}

	widths := t.columnWidths(columns, rows)
	total := totalWidth(widths)
	separator := t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total))

	var builder strings.Builder

	if title != "" {
		builder.WriteString(t.styles.Bold.Render(title) + "\n")
	}
	builder.WriteString(separator + "\n")

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = t.styles.TableHeader.Render(pad(col.Header, widths[i], col.Align))
	}
	builder.WriteString(strings.Join(headers, strings.Repeat(" ", tableGap)) + "\n")
	builder.WriteString(separator + "\n")

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			var cell string
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			if col.Flexible {
				cell = truncateLeft(cell, widths[i])
			}
			cell = pad(cell, widths[i], col.Align)
			if i == 0 {
				cell = t.styles.ForSeverity(row.Severity).Render(cell)
			}
			cells[i] = cell
		}
		builder.WriteString(strings.TrimRight(strings.Join(cells, strings.Repeat(" ", tableGap)), " ") + "\n")
	}

	return builder.String()
}

// columnWidths sizes each column to its widest cell, then shrinks flexible
// columns until the table fits the terminal.
func (t *TableFormatter) columnWidths(columns []Column, rows []TableRow) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = lipgloss.Width(col.Header)
	}
	for _, row := range rows {
		for i := range min(len(row.Cells), len(columns)) {
			widths[i] = max(widths[i], lipgloss.Width(row.Cells[i]))
		}
	}

	for i, col := range columns {
		excess := totalWidth(widths) - t.termWidth
		if excess <= 0 {
			break
		}
		if !col.Flexible {
			continue
		}
		floor := max(minFlexWidth, lipgloss.Width(col.Header))
		widths[i] = max(floor, widths[i]-excess)
	}

	return widths
}

func totalWidth(widths []int) int {
	total := tableGap * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

// pad aligns s within width. It must be applied before styling.
func pad(s string, width int, align Align) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if align == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// truncateLeft shortens s to width runes, keeping its end.
func truncateLeft(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	keep := max(0, width-1)
	if keep > len(runes) {
		keep = len(runes)
	}
	return ellipsis + string(runes[len(runes)-keep:])
}
