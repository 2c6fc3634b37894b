package markup

import "strings"

// Element records one opened element in document order. Parent is the trace
// index of the element that was on top of the stack when this one opened, or
// -1 at top level.
type Element struct {
	Name   string
	Attrs  string
	Pos    Position
	Parent int
	Depth  int
}

// Attr returns the value of the named attribute from the element's verbatim
// attribute text. Quoted and unquoted values are recognized; a bare
// attribute yields an empty value. Keys compare case-sensitively.
func (e Element) Attr(key string) (string, bool) {
	return AttrValue(e.Attrs, key)
}

// AttrValue scans verbatim attribute text for key.
func AttrValue(attrs, key string) (string, bool) {
	rest := attrs
	for {
		rest = strings.TrimLeft(rest, " \t\r\n\f")
		if rest == "" {
			return "", false
		}

		end := strings.IndexAny(rest, "= \t\r\n\f")
		if end < 0 {
			return "", rest == key
		}
		name := rest[:end]
		rest = strings.TrimLeft(rest[end:], " \t\r\n\f")

		if !strings.HasPrefix(rest, "=") {
			if name == key {
				return "", true
			}
			continue
		}
		rest = strings.TrimLeft(rest[1:], " \t\r\n\f")

		var value string
		switch {
		case rest == "":
		case rest[0] == '"' || rest[0] == '\'':
			closing := strings.IndexByte(rest[1:], rest[0])
			if closing < 0 {
				value, rest = rest[1:], ""
			} else {
				value, rest = rest[1:closing+1], rest[closing+2:]
			}
		default:
			stop := strings.IndexAny(rest, " \t\r\n\f")
			if stop < 0 {
				stop = len(rest)
			}
			value, rest = rest[:stop], rest[stop:]
		}

		if name == key {
			return value, true
		}
	}
}

// Children returns the trace indices of the direct children of parent.
// Pass -1 for top-level elements.
func Children(trace []Element, parent int) []int {
	var out []int
	for idx, elem := range trace {
		if elem.Parent == parent {
			out = append(out, idx)
		}
	}
	return out
}
