package markup

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenizer performs a single left-to-right pass over a document.
// Text is accumulated lazily and flushed whenever a markup construct begins,
// so adjacent character runs (including stray '<') form one Text token.
type tokenizer struct {
	src  string
	mode Mode
	off  int
	pos  Position

	// pendingStart is the byte offset of buffered text, or -1.
	pendingStart int
	pendingPos   Position

	// raw is the name of the raw-text element whose content is captured next.
	raw string

	yield   func(Token) bool
	stopped bool
}

// Tokenize returns the lexical events of text under the given mode.
// The sequence is lazy and single-pass; ranging over it again re-scans the
// document from the start. Tokenize never fails: unparseable spans are
// reported as TokenMalformed followed by Text.
func Tokenize(text string, mode Mode) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		t := &tokenizer{
			src:          text,
			mode:         mode,
			pos:          startPosition,
			pendingStart: -1,
			yield:        yield,
		}
		t.run()
	}
}

// Collect materializes the token sequence into a slice.
func Collect(text string, mode Mode) []Token {
	var tokens []Token
	for tok := range Tokenize(text, mode) {
		tokens = append(tokens, tok)
	}
	return tokens
}

func (t *tokenizer) run() {
	for t.off < len(t.src) && !t.stopped {
		if t.raw != "" {
			t.captureRaw()
			continue
		}

		idx := strings.IndexByte(t.src[t.off:], '<')
		if idx < 0 {
			t.startText()
			t.advanceTo(len(t.src))
			break
		}
		if idx > 0 {
			t.startText()
			t.advanceTo(t.off + idx)
		}
		t.markup()
	}
	t.flush()
}

// markup dispatches on the construct starting at the '<' under the cursor.
func (t *tokenizer) markup() {
	rest := t.src[t.off:]

	switch {
	case strings.HasPrefix(rest, "<!--"):
		t.delimited(TokenComment, "<!--", "-->", "unterminated comment")
	case strings.HasPrefix(rest, "<![CDATA["):
		t.cdata()
	case strings.HasPrefix(rest, "<!"):
		t.delimited(TokenDeclaration, "<!", ">", "unterminated declaration")
	case strings.HasPrefix(rest, "<?"):
		t.delimited(TokenDeclaration, "<?", "?>", "unterminated processing instruction")
	case strings.HasPrefix(rest, "</"):
		t.closeTag()
	case t.nameStartsAt(t.off + 1):
		t.openTag()
	default:
		// A lone '<' is ordinary text.
		t.startText()
		t.advanceTo(t.off + 1)
	}
}

// delimited consumes a construct running from open through close.
func (t *tokenizer) delimited(kind TokenKind, open, closer, reason string) {
	end := strings.Index(t.src[t.off+len(open):], closer)
	if end < 0 {
		t.malformedRest(reason)
		return
	}
	t.flush()
	tok := Token{Kind: kind, Pos: t.pos}
	t.advanceTo(t.off + len(open) + end + len(closer))
	t.emit(tok)
}

// cdata treats a CDATA section as character data.
func (t *tokenizer) cdata() {
	const open, closer = "<![CDATA[", "]]>"
	end := strings.Index(t.src[t.off+len(open):], closer)
	if end < 0 {
		t.malformedRest("unterminated CDATA section")
		return
	}
	t.startText()
	t.advanceTo(t.off + len(open) + end + len(closer))
}

func (t *tokenizer) openTag() {
	start := t.pos
	nameStart := t.off + 1
	nameEnd := t.scanName(nameStart)
	name := t.src[nameStart:nameEnd]

	gt := t.findTagEnd(nameEnd)
	if gt < 0 {
		t.malformedRest("unterminated start tag <" + name + ">")
		return
	}

	attrs := strings.TrimSpace(t.src[nameEnd:gt])
	selfClosing := strings.HasSuffix(attrs, "/")
	if selfClosing {
		attrs = strings.TrimSpace(strings.TrimSuffix(attrs, "/"))
	}

	t.flush()
	t.advanceTo(gt + 1)

	name = t.mode.normalizeName(name)
	t.emit(Token{
		Kind:        TokenOpen,
		Name:        name,
		Attrs:       attrs,
		SelfClosing: selfClosing,
		Pos:         start,
	})

	if !selfClosing && Classify(name, t.mode) == KindRawText {
		t.raw = name
	}
}

func (t *tokenizer) closeTag() {
	start := t.pos
	nameStart := t.off + 2
	if !t.nameStartsAt(nameStart) {
		t.malformedSpan("closing tag without a name")
		return
	}
	nameEnd := t.scanName(nameStart)
	name := t.src[nameStart:nameEnd]

	idx := nameEnd
	for idx < len(t.src) && isSpace(t.src[idx]) {
		idx++
	}
	if idx >= len(t.src) || t.src[idx] != '>' {
		t.malformedSpan("malformed closing tag </" + name + ">")
		return
	}

	t.flush()
	t.advanceTo(idx + 1)
	t.emit(Token{Kind: TokenClose, Name: t.mode.normalizeName(name), Pos: start})
}

// captureRaw emits the content of a raw-text element as a single Text token.
// The closing tag itself is left for the regular scanner.
func (t *tokenizer) captureRaw() {
	name := t.raw
	t.raw = ""

	end := t.findRawClose(name)
	if end < 0 {
		end = len(t.src)
	}
	if end > t.off {
		t.startText()
		t.advanceTo(end)
		t.flush()
	}
}

// findRawClose returns the offset of the "</name" sequence that terminates a
// raw-text element, or -1. The name must be followed by a non-name character.
func (t *tokenizer) findRawClose(name string) int {
	from := t.off
	for {
		idx := strings.Index(t.src[from:], "</")
		if idx < 0 {
			return -1
		}
		at := from + idx
		nameStart := at + 2
		nameEnd := nameStart + len(name)
		if nameEnd <= len(t.src) && t.sameName(t.src[nameStart:nameEnd], name) && !t.nameCharAt(nameEnd) {
			return at
		}
		from = at + 2
	}
}

func (t *tokenizer) sameName(candidate, name string) bool {
	if t.mode == ModeHTML {
		return strings.EqualFold(candidate, name)
	}
	return candidate == name
}

// findTagEnd returns the offset of the '>' closing a start tag, skipping any
// '>' inside quoted attribute values. Returns -1 if there is none.
func (t *tokenizer) findTagEnd(from int) int {
	var quote byte
	var prev byte
	for idx := from; idx < len(t.src); idx++ {
		char := t.src[idx]
		if quote != 0 {
			if char == quote {
				quote = 0
				prev = char
			}
			continue
		}
		switch {
		case char == '>':
			return idx
		case (char == '"' || char == '\'') && prev == '=':
			quote = char
		}
		if !isSpace(char) {
			prev = char
		}
	}
	return -1
}

// malformedRest reports a malformed construct at the cursor and turns the
// remainder of the document into text.
func (t *tokenizer) malformedRest(reason string) {
	t.flush()
	t.emit(Token{Kind: TokenMalformed, Pos: t.pos, Text: reason})
	t.startText()
	t.advanceTo(len(t.src))
}

// malformedSpan reports a malformed construct at the cursor and turns the
// span through the next '>' into text.
func (t *tokenizer) malformedSpan(reason string) {
	t.flush()
	t.emit(Token{Kind: TokenMalformed, Pos: t.pos, Text: reason})
	t.startText()
	gt := strings.IndexByte(t.src[t.off:], '>')
	if gt < 0 {
		t.advanceTo(len(t.src))
		return
	}
	t.advanceTo(t.off + gt + 1)
}

func (t *tokenizer) startText() {
	if t.pendingStart < 0 {
		t.pendingStart = t.off
		t.pendingPos = t.pos
	}
}

func (t *tokenizer) flush() {
	if t.pendingStart < 0 {
		return
	}
	start := t.pendingStart
	t.pendingStart = -1
	if t.off > start {
		t.emit(Token{Kind: TokenText, Pos: t.pendingPos, Text: t.src[start:t.off]})
	}
}

func (t *tokenizer) emit(tok Token) {
	if t.stopped {
		return
	}
	if !t.yield(tok) {
		t.stopped = true
	}
}

// advanceTo moves the cursor to end, updating the position per rune.
func (t *tokenizer) advanceTo(end int) {
	for t.off < end {
		r, size := utf8.DecodeRuneInString(t.src[t.off:])
		if r == '\n' {
			t.pos.Line++
			t.pos.Column = 1
		} else {
			t.pos.Column++
		}
		t.off += size
	}
}

// scanName returns the offset just past the tag name starting at from.
func (t *tokenizer) scanName(from int) int {
	idx := from
	for idx < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[idx:])
		if !isNameChar(r) {
			break
		}
		idx += size
	}
	return idx
}

func (t *tokenizer) nameStartsAt(off int) bool {
	if off >= len(t.src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.src[off:])
	return isNameStart(r)
}

func (t *tokenizer) nameCharAt(off int) bool {
	if off >= len(t.src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(t.src[off:])
	return isNameChar(r)
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || (r != utf8.RuneError && unicode.IsLetter(r))
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r)
}

func isSpace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r' || char == '\f'
}
