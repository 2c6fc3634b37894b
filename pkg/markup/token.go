package markup

// TokenKind classifies a lexical event produced by the tokenizer.
type TokenKind uint8

const (
	// TokenOpen is a start tag, possibly self-closing.
	TokenOpen TokenKind = iota + 1

	// TokenClose is an end tag.
	TokenClose

	// TokenText is a run of character data, including raw-text content.
	TokenText

	// TokenComment is a <!-- ... --> comment.
	TokenComment

	// TokenDeclaration is a <!...> declaration or a <?...?> processing instruction.
	TokenDeclaration

	// TokenMalformed marks a tag that could not be parsed. It is emitted in
	// stream order, immediately before the text it degrades into.
	TokenMalformed
)

// String returns a lower-case name for the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	case TokenText:
		return "text"
	case TokenComment:
		return "comment"
	case TokenDeclaration:
		return "declaration"
	case TokenMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Token is a single lexical event. Tokens are values and are never mutated
// after the tokenizer yields them.
type Token struct {
	// Kind classifies the token.
	Kind TokenKind

	// Name is the tag name for Open and Close tokens, normalized per mode.
	Name string

	// Attrs is the verbatim attribute text of an Open token, trimmed.
	Attrs string

	// SelfClosing is set on Open tokens written as <name/>.
	SelfClosing bool

	// Pos is the position of the token's first character.
	Pos Position

	// Text is the source text of Text tokens and the reason of Malformed tokens.
	Text string
}

