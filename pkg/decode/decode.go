// Package decode turns raw document bytes into text. UTF-8 is tried first,
// UTF-16 is honoured when a byte order mark says so, and anything else is
// read as ISO-8859-1, which accepts every byte sequence.
package decode

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the character encoding a document was decoded from.
type Encoding string

const (
	// UTF8 is used for valid UTF-8 input, with or without a byte order mark.
	UTF8 Encoding = "utf-8"
	// UTF16LE is selected by a little-endian byte order mark.
	UTF16LE Encoding = "utf-16le"
	// UTF16BE is selected by a big-endian byte order mark.
	UTF16BE Encoding = "utf-16be"
	// Latin1 is the last fallback. Every byte sequence decodes under it.
	Latin1 Encoding = "iso-8859-1"
)

// IsFallback reports whether the encoding was chosen because the primary
// encoding failed.
func (e Encoding) IsFallback() bool {
	return e == Latin1
}

//nolint:gochecknoglobals // Byte order marks.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Bytes decodes data and reports the encoding used. A leading byte order
// mark is removed from the result.
func Bytes(data []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		body := data[len(bomUTF8):]
		if utf8.Valid(body) {
			return string(body), UTF8, nil
		}
		return latin1(data)
	case bytes.HasPrefix(data, bomUTF16LE):
		return transcode(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data, UTF16LE)
	case bytes.HasPrefix(data, bomUTF16BE):
		return transcode(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data, UTF16BE)
	case utf8.Valid(data):
		return string(data), UTF8, nil
	default:
		return latin1(data)
	}
}

func latin1(data []byte) (string, Encoding, error) {
	return transcode(charmap.ISO8859_1, data, Latin1)
}

func transcode(enc encoding.Encoding, data []byte, name Encoding) (string, Encoding, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", name, fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), name, nil
}
