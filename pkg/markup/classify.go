package markup

// ElementKind describes how an element participates in nesting.
type ElementKind int

const (
	// KindNormal elements are pushed on open and popped by their closing tag.
	KindNormal ElementKind = iota

	// KindVoid elements never take a closing tag and are never pushed.
	KindVoid

	// KindRawText elements nest like normal elements but their content is
	// captured verbatim instead of being tokenized.
	KindRawText
)

// String returns a lower-case name for the kind.
func (k ElementKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindVoid:
		return "void"
	case KindRawText:
		return "raw-text"
	default:
		return "unknown"
	}
}

// htmlVoidElements are the HTML elements that never have a closing tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlVoidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// htmlRawTextElements are the HTML containers whose content is not tokenized.
//
//nolint:gochecknoglobals // Read-only lookup table.
var htmlRawTextElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"pre":    {},
	"code":   {},
}

// Classify returns the element kind of a tag name under the given mode.
// In HTML mode the name is matched case-insensitively against fixed tables;
// in XML mode every element is KindNormal.
func Classify(name string, mode Mode) ElementKind {
	if mode != ModeHTML {
		return KindNormal
	}
	name = mode.normalizeName(name)
	if _, ok := htmlVoidElements[name]; ok {
		return KindVoid
	}
	if _, ok := htmlRawTextElements[name]; ok {
		return KindRawText
	}
	return KindNormal
}

// VoidElements returns the HTML void element names in no particular order.
func VoidElements() []string {
	return keys(htmlVoidElements)
}

// RawTextElements returns the HTML raw-text element names in no particular order.
func RawTextElements() []string {
	return keys(htmlRawTextElements)
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
