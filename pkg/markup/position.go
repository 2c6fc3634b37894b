package markup

import "fmt"

// Position represents a 1-based line and column in a document.
// Columns count runes, not bytes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before reports whether p comes strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// startPosition is the position of the first character of a document.
//
//nolint:gochecknoglobals // Read-only value.
var startPosition = Position{Line: 1, Column: 1}
