// Package validate is the single entry point of the checking engine: it runs
// the tokenizer, the nesting validator and the optional schema profile over
// decoded text and assembles the result.
package validate

import (
	"fmt"

	"github.com/yaklabco/gomlcheck/pkg/markup"
	"github.com/yaklabco/gomlcheck/pkg/schema"
)

// Options selects how a document is checked.
type Options struct {
	// Mode is the lexical mode. Required.
	Mode markup.Mode

	// Schema is the structural profile applied to XML documents.
	Schema schema.Name
}

// Result is the outcome of checking one document.
type Result struct {
	// Diagnostics holds nesting diagnostics in document order followed by
	// schema diagnostics.
	Diagnostics []markup.Diagnostic `json:"diagnostics"`

	// TagCount is the number of opening tags in the document.
	TagCount int `json:"tagCount"`

	// Format is the mode the document was checked under.
	Format markup.Mode `json:"format"`
}

// OK reports whether the document produced no diagnostics.
func (r Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Count returns the number of diagnostics of the given kind.
func (r Result) Count(kind markup.DiagnosticKind) int {
	total := 0
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			total++
		}
	}
	return total
}

// ValidateDocument checks text under mode and, for XML, against the named schema.
func ValidateDocument(text string, mode markup.Mode, name schema.Name) (Result, error) {
	return ValidateWithOptions(text, Options{Mode: mode, Schema: name})
}

// ValidateWithOptions checks text as configured by opts. Errors are returned
// only for an invalid mode or schema; problems in the document itself are
// reported as diagnostics.
func ValidateWithOptions(text string, opts Options) (Result, error) {
	if !opts.Mode.IsValid() {
		return Result{}, fmt.Errorf("validate document: %w: %s", markup.ErrUnknownMode, opts.Mode)
	}
	if !opts.Schema.IsValid() {
		return Result{}, fmt.Errorf("validate document: %w: %s", schema.ErrUnknownSchema, opts.Schema)
	}

	nesting := markup.Validate(markup.Tokenize(text, opts.Mode), opts.Mode)

	diags := nesting.Diagnostics
	if opts.Mode == markup.ModeXML && opts.Schema != schema.None {
		schemaDiags, err := schema.Check(nesting.Trace, opts.Schema)
		if err != nil {
			return Result{}, fmt.Errorf("validate document: %w", err)
		}
		diags = append(diags, schemaDiags...)
	}

	return Result{
		Diagnostics: diags,
		TagCount:    nesting.TagCount,
		Format:      opts.Mode,
	}, nil
}
