package markup

import (
	"errors"
	"fmt"
)

// ErrUnknownDiagnosticKind is returned by ParseDiagnosticKind for an
// unrecognized identifier.
var ErrUnknownDiagnosticKind = errors.New("unknown diagnostic kind")

// DiagnosticKind classifies a structural problem found in a document.
type DiagnosticKind int

const (
	// MismatchedClose reports an element implicitly closed by the closing tag
	// of one of its ancestors.
	MismatchedClose DiagnosticKind = iota + 1

	// UnclosedAtEOF reports an element still open at end of input.
	UnclosedAtEOF

	// UnexpectedClose reports a closing tag with no matching open element.
	UnexpectedClose

	// MalformedTag reports a tag that could not be parsed.
	MalformedTag

	// SchemaViolation reports an unmet structural schema requirement.
	SchemaViolation
)

type kindInfo struct {
	id          string
	name        string
	description string
}

//nolint:gochecknoglobals // Read-only lookup table.
var kindTable = map[DiagnosticKind]kindInfo{
	MismatchedClose: {
		id:          "mismatched-close",
		name:        "MismatchedClose",
		description: "An element was implicitly closed by the closing tag of an ancestor.",
	},
	UnclosedAtEOF: {
		id:          "unclosed-at-eof",
		name:        "UnclosedAtEOF",
		description: "An element was never closed before the end of the document.",
	},
	UnexpectedClose: {
		id:          "unexpected-close",
		name:        "UnexpectedClose",
		description: "A closing tag has no matching open element.",
	},
	MalformedTag: {
		id:          "malformed-tag",
		name:        "MalformedTag",
		description: "A tag could not be parsed and was treated as text.",
	},
	SchemaViolation: {
		id:          "schema-violation",
		name:        "SchemaViolation",
		description: "The document does not satisfy the requested schema profile.",
	},
}

// AllDiagnosticKinds returns every diagnostic kind in declaration order.
func AllDiagnosticKinds() []DiagnosticKind {
	return []DiagnosticKind{MismatchedClose, UnclosedAtEOF, UnexpectedClose, MalformedTag, SchemaViolation}
}

// ParseDiagnosticKind resolves a kebab-case identifier such as "unclosed-at-eof".
func ParseDiagnosticKind(id string) (DiagnosticKind, error) {
	for kind, info := range kindTable {
		if info.id == id {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDiagnosticKind, id)
}

// ID returns the stable kebab-case identifier used in configuration and
// machine-readable output.
func (k DiagnosticKind) ID() string {
	if info, ok := kindTable[k]; ok {
		return info.id
	}
	return "unknown"
}

// Description returns a one-sentence explanation of the kind.
func (k DiagnosticKind) Description() string {
	return kindTable[k].description
}

func (k DiagnosticKind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler using the kind's ID.
func (k DiagnosticKind) MarshalText() ([]byte, error) {
	if _, ok := kindTable[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiagnosticKind, int(k))
	}
	return []byte(k.ID()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DiagnosticKind) UnmarshalText(text []byte) error {
	kind, err := ParseDiagnosticKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Diagnostic is a single reported problem. Diagnostics are immutable values.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind DiagnosticKind `json:"kind"`

	// Tag is the element name the problem concerns, if any.
	Tag string `json:"tag,omitempty"`

	// Pos is where the problem was detected.
	Pos Position `json:"pos"`

	// OpenPos is the open position of the affected element. It equals Pos
	// for kinds that are reported at the element itself.
	OpenPos Position `json:"openPos"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// String formats the diagnostic as "line:col: message [kind-id]".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s]", d.Pos, d.Message, d.Kind.ID())
}

// NewSchemaViolation returns a SchemaViolation diagnostic at pos.
func NewSchemaViolation(tag string, pos Position, message string) Diagnostic {
	return Diagnostic{Kind: SchemaViolation, Tag: tag, Pos: pos, OpenPos: pos, Message: message}
}

func mismatchedClose(frame Frame, closer Token) Diagnostic {
	return Diagnostic{
		Kind:    MismatchedClose,
		Tag:     frame.Name,
		Pos:     closer.Pos,
		OpenPos: frame.Pos,
		Message: fmt.Sprintf("expected </%s>, implicitly closed by </%s>", frame.Name, closer.Name),
	}
}

func unclosedAtEOF(frame Frame) Diagnostic {
	return Diagnostic{
		Kind:    UnclosedAtEOF,
		Tag:     frame.Name,
		Pos:     frame.Pos,
		OpenPos: frame.Pos,
		Message: fmt.Sprintf("<%s> opened at %s is never closed", frame.Name, frame.Pos),
	}
}

func unexpectedClose(tok Token, void bool) Diagnostic {
	message := fmt.Sprintf("unexpected closing tag </%s> with no matching open element", tok.Name)
	if void {
		message = fmt.Sprintf("superfluous closing tag for void element </%s>", tok.Name)
	}
	return Diagnostic{Kind: UnexpectedClose, Tag: tok.Name, Pos: tok.Pos, OpenPos: tok.Pos, Message: message}
}

func malformedTag(tok Token) Diagnostic {
	return Diagnostic{Kind: MalformedTag, Pos: tok.Pos, OpenPos: tok.Pos, Message: tok.Text}
}
