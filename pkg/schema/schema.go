// Package schema checks an element trace against a named structural profile.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/markup"
)

// ErrUnknownSchema is returned for a schema name outside the supported set.
var ErrUnknownSchema = errors.New("unknown schema")

// Name identifies a schema profile. The set of profiles is closed.
type Name int

const (
	// None disables schema checking.
	None Name = iota

	// MoodleMultichoice is the Moodle XML multiple choice quiz format.
	MoodleMultichoice
)

// All returns every selectable profile, excluding None.
func All() []Name {
	return []Name{MoodleMultichoice}
}

// Parse resolves a profile name. The empty string and "none" yield None.
func Parse(s string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "moodlemc":
		return MoodleMultichoice, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownSchema, s)
	}
}

// IsValid reports whether n is one of the declared profiles, None included.
func (n Name) IsValid() bool {
	return n == None || n == MoodleMultichoice
}

func (n Name) String() string {
	switch n {
	case None:
		return ""
	case MoodleMultichoice:
		return "moodlemc"
	default:
		return fmt.Sprintf("Name(%d)", int(n))
	}
}

// Description returns a one-line summary of the profile.
func (n Name) Description() string {
	switch n {
	case MoodleMultichoice:
		return "Moodle XML quiz: one <quiz> root holding <question> elements; " +
			"multichoice questions need <name>, <questiontext> and <answer> children."
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if !n.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSchema, int(n))
	}
	return []byte(n.String()), nil
}

// Check validates trace against the profile and returns SchemaViolation
// diagnostics sorted by position. None yields no diagnostics.
func Check(trace []markup.Element, name Name) ([]markup.Diagnostic, error) {
	var diags []markup.Diagnostic

	switch name {
	case None:
		return nil, nil
	case MoodleMultichoice:
		diags = checkMoodleMultichoice(trace)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSchema, int(name))
	}

	slices.SortStableFunc(diags, func(a, b markup.Diagnostic) int {
		switch {
		case a.Pos.Before(b.Pos):
			return -1
		case b.Pos.Before(a.Pos):
			return 1
		default:
			return 0
		}
	})
	return diags, nil
}
