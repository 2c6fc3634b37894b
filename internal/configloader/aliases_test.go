package configloader

import (
	"slices"
	"testing"
)

func TestNormalizeCheckID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "unclosed-at-eof", want: "unclosed-at-eof"},
		{key: "UnclosedAtEOF", want: "unclosed-at-eof"},
		{key: "unclosed_at_eof", want: "unclosed-at-eof"},
		{key: " MISMATCHED-CLOSE ", want: "mismatched-close"},
		{key: "crossed", want: "mismatched-close"},
		{key: "stray-close", want: "unexpected-close"},
		{key: "schema", want: "schema-violation"},
		{key: "no-trailing-spaces", want: "no-trailing-spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeCheckID(tt.key); got != tt.want {
				t.Errorf("NormalizeCheckID(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestIsKnownCheck(t *testing.T) {
	t.Parallel()

	if !IsKnownCheck("malformed-tag") {
		t.Error("malformed-tag should be known")
	}
	if IsKnownCheck("MalformedTag") {
		t.Error("only canonical IDs are known")
	}
}

func TestGetAliasesForCheck(t *testing.T) {
	t.Parallel()

	got := GetAliasesForCheck("unexpected-close")
	want := []string{"stray-close", "superfluous", "unexpected"}
	if !slices.Equal(got, want) {
		t.Errorf("GetAliasesForCheck = %v, want %v", got, want)
	}
}

func TestStripJSONComments(t *testing.T) {
	t.Parallel()

	in := `{"a": "http://x", /* block */ "b": 1} // trailing`
	got := string(stripJSONComments([]byte(in)))
	want := `{"a": "http://x",  "b": 1} `
	if got != want {
		t.Errorf("stripJSONComments = %q, want %q", got, want)
	}
}
