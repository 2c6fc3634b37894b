package configloader

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parseJSONC decodes JSON that may contain // and /* */ comments.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}
	return nil
}

type jsonScanState int

const (
	scanCode jsonScanState = iota
	scanString
	scanLineComment
	scanBlockComment
)

// stripJSONComments drops comments outside string literals. Newlines that end
// line comments are kept so decode errors report the right line.
func stripJSONComments(content []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(content))

	state := scanCode
	for idx := 0; idx < len(content); idx++ {
		char := content[idx]
		next := byte(0)
		if idx+1 < len(content) {
			next = content[idx+1]
		}

		switch state {
		case scanLineComment:
			if char == '\n' {
				out.WriteByte(char)
				state = scanCode
			}
		case scanBlockComment:
			if char == '*' && next == '/' {
				idx++
				state = scanCode
			}
		case scanString:
			out.WriteByte(char)
			switch char {
			case '\\':
				if next != 0 {
					out.WriteByte(next)
					idx++
				}
			case '"':
				state = scanCode
			}
		default:
			switch {
			case char == '/' && next == '/':
				idx++
				state = scanLineComment
			case char == '/' && next == '*':
				idx++
				state = scanBlockComment
			default:
				if char == '"' {
					state = scanString
				}
				out.WriteByte(char)
			}
		}
	}

	return out.Bytes()
}
