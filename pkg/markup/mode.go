package markup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a caller supplies a mode that is neither
// HTML nor XML.
var ErrUnknownMode = errors.New("unknown document mode")

// Mode selects the lexical rules applied to a document.
type Mode int

const (
	// ModeHTML lower-cases tag names and applies void and raw-text semantics.
	ModeHTML Mode = iota + 1

	// ModeXML preserves tag name case; every element is a normal element.
	ModeXML
)

// ParseMode parses a mode name ("html" or "xml", case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html":
		return ModeHTML, nil
	case "xml":
		return ModeXML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// IsValid returns true if the mode is ModeHTML or ModeXML.
func (m Mode) IsValid() bool {
	return m == ModeHTML || m == ModeXML
}

// String returns the upper-case name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeHTML:
		return "HTML"
	case ModeXML:
		return "XML"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// normalizeName applies the case rule of the mode to a tag name.
func (m Mode) normalizeName(name string) string {
	if m == ModeHTML {
		return strings.ToLower(name)
	}
	return name
}
