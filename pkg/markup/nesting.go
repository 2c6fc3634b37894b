package markup

import "iter"

// Frame is one open, content-bearing element awaiting its closing tag.
type Frame struct {
	Name string
	Pos  Position

	// elem is the index of the element in the trace.
	elem int
}

// NestingResult is the outcome of a nesting validation pass.
type NestingResult struct {
	// Diagnostics are ordered by the position of the detecting event.
	Diagnostics []Diagnostic

	// TagCount is the number of Open tokens seen, void and self-closing included.
	TagCount int

	// Trace lists every opened element in document order.
	Trace []Element
}

// Validator is the tag nesting state machine. It consumes tokens strictly in
// order and must not be shared between goroutines. A Validator is single-use:
// call Finish exactly once after the last Feed.
type Validator struct {
	mode        Mode
	stack       []Frame
	diagnostics []Diagnostic
	trace       []Element
	tagCount    int
}

// NewValidator returns a Validator for documents in the given mode.
func NewValidator(mode Mode) *Validator {
	return &Validator{mode: mode}
}

// Feed applies one token to the validator.
func (v *Validator) Feed(tok Token) {
	switch tok.Kind {
	case TokenOpen:
		v.open(tok)
	case TokenClose:
		v.close(tok)
	case TokenMalformed:
		v.diagnostics = append(v.diagnostics, malformedTag(tok))
	case TokenText, TokenComment, TokenDeclaration:
	}
}

// Depth returns the number of currently open frames.
func (v *Validator) Depth() int {
	return len(v.stack)
}

// Finish reports every frame still open, innermost first, and returns the result.
func (v *Validator) Finish() NestingResult {
	for len(v.stack) > 0 {
		top := v.stack[len(v.stack)-1]
		v.stack = v.stack[:len(v.stack)-1]
		v.diagnostics = append(v.diagnostics, unclosedAtEOF(top))
	}

	return NestingResult{
		Diagnostics: v.diagnostics,
		TagCount:    v.tagCount,
		Trace:       v.trace,
	}
}

func (v *Validator) open(tok Token) {
	v.tagCount++

	parent := -1
	if len(v.stack) > 0 {
		parent = v.stack[len(v.stack)-1].elem
	}
	v.trace = append(v.trace, Element{
		Name:   tok.Name,
		Attrs:  tok.Attrs,
		Pos:    tok.Pos,
		Parent: parent,
		Depth:  len(v.stack),
	})

	if tok.SelfClosing || Classify(tok.Name, v.mode) == KindVoid {
		return
	}
	v.stack = append(v.stack, Frame{Name: tok.Name, Pos: tok.Pos, elem: len(v.trace) - 1})
}

func (v *Validator) close(tok Token) {
	if Classify(tok.Name, v.mode) == KindVoid {
		v.diagnostics = append(v.diagnostics, unexpectedClose(tok, true))
		return
	}

	match := -1
	for idx := len(v.stack) - 1; idx >= 0; idx-- {
		if v.stack[idx].Name == tok.Name {
			match = idx
			break
		}
	}
	if match < 0 {
		v.diagnostics = append(v.diagnostics, unexpectedClose(tok, false))
		return
	}

	for idx := len(v.stack) - 1; idx > match; idx-- {
		v.diagnostics = append(v.diagnostics, mismatchedClose(v.stack[idx], tok))
	}
	v.stack = v.stack[:match]
}

// Validate runs a fresh Validator over tokens.
func Validate(tokens iter.Seq[Token], mode Mode) NestingResult {
	v := NewValidator(mode)
	for tok := range tokens {
		v.Feed(tok)
	}
	return v.Finish()
}
