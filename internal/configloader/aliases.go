package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/gomlcheck/pkg/markup"
)

// checkAliases maps informal names to canonical check IDs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var checkAliases = map[string]string{
	"mismatched":  "mismatched-close",
	"crossed":     "mismatched-close",
	"unclosed":    "unclosed-at-eof",
	"unexpected":  "unexpected-close",
	"stray-close": "unexpected-close",
	"superfluous": "unexpected-close",
	"malformed":   "malformed-tag",
	"schema":      "schema-violation",
}

// NormalizeCheckID resolves a config key to a canonical check ID. It accepts
// the ID itself, the kind name ("UnclosedAtEOF"), snake case
// ("unclosed_at_eof"), and the aliases above. Unknown keys are returned
// unchanged.
func NormalizeCheckID(key string) string {
	folded := foldKey(key)
	for _, kind := range markup.AllDiagnosticKinds() {
		if folded == foldKey(kind.ID()) || folded == foldKey(kind.String()) {
			return kind.ID()
		}
	}
	if id, ok := checkAliases[strings.ToLower(strings.TrimSpace(key))]; ok {
		return id
	}
	return key
}

// IsKnownCheck reports whether id is a canonical check ID.
func IsKnownCheck(id string) bool {
	_, err := markup.ParseDiagnosticKind(id)
	return err == nil
}

// GetAliasesForCheck returns the aliases that resolve to id, sorted.
func GetAliasesForCheck(id string) []string {
	var out []string
	for alias, target := range checkAliases {
		if target == id {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// foldKey lower-cases a key and drops separators.
func foldKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(key)))
}
