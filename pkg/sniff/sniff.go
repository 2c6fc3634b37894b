// Package sniff decides whether a document should be checked as HTML or XML.
// It uses content markers near the start of the document first and falls
// back to go-enry's extension table.
package sniff

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gomlcheck/pkg/markup"
)

// window is the number of leading runes inspected for content markers.
const window = 200

// Source records how a mode was chosen.
type Source string

const (
	// SourceForced means the caller chose the mode explicitly.
	SourceForced Source = "forced"

	// SourceContent means a marker near the start of the document matched.
	SourceContent Source = "content"

	// SourceExtension means the file extension identified the format.
	SourceExtension Source = "extension"

	// SourceDefault means nothing matched and XML was assumed.
	SourceDefault Source = "default"
)

// Result is the outcome of format detection.
type Result struct {
	Mode   markup.Mode
	Source Source
}

// Known reports whether detection found positive evidence for the mode.
func (r Result) Known() bool {
	return r.Source != SourceDefault
}

// Forced returns a Result for a caller-chosen mode.
func Forced(mode markup.Mode) Result {
	return Result{Mode: mode, Source: SourceForced}
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	htmlMarkers = []string{"<!doctype html", "<html"}
	xmlMarkers  = []string{"<?xml", "<quiz", "<question"}

	enryModes = map[string]markup.Mode{
		"HTML": markup.ModeHTML,
		"XML":  markup.ModeXML,
		"SVG":  markup.ModeXML,
		"XSLT": markup.ModeXML,
	}
)

// Detect returns the mode for a document at path with the given text.
// Unknown documents are reported as XML with SourceDefault.
func Detect(path, text string) Result {
	// Strategy 1: markers near the start of the content.
	if mode, ok := detectByContent(text); ok {
		return Result{Mode: mode, Source: SourceContent}
	}

	// Strategy 2: extension table.
	if mode, ok := detectByExtension(path); ok {
		return Result{Mode: mode, Source: SourceExtension}
	}

	return Result{Mode: markup.ModeXML, Source: SourceDefault}
}

func detectByContent(text string) (markup.Mode, bool) {
	head := strings.ToLower(prefix(text, window))

	for _, marker := range htmlMarkers {
		if strings.Contains(head, marker) {
			return markup.ModeHTML, true
		}
	}
	for _, marker := range xmlMarkers {
		if strings.Contains(head, marker) {
			return markup.ModeXML, true
		}
	}
	return 0, false
}

func detectByExtension(path string) (markup.Mode, bool) {
	if path == "" || filepath.Ext(path) == "" {
		return 0, false
	}
	// Several languages can share an extension (.html is also Ecmarkup), so
	// take the first candidate we understand.
	for _, lang := range enry.GetLanguagesByExtension(path, nil, nil) {
		if mode, ok := enryModes[lang]; ok {
			return mode, true
		}
	}
	return 0, false
}

// prefix returns at most n leading runes of s.
func prefix(s string, n int) string {
	count := 0
	for idx := range s {
		if count == n {
			return s[:idx]
		}
		count++
	}
	return s
}
