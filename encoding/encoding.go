// Package encoding turns raw XML input bytes into the decoded codepoint
// string the parser works on. It wraps the UTF-16 machinery in
// golang.org/x/text/encoding; the package exists partly because the
// "unicode" package name there clashes with the stdlib and it is easier
// to hide it here.
package encoding

import (
	"bytes"
	"errors"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrInvalidUTF8  = errors.New("input is not valid UTF-8")
	ErrInvalidUTF16 = errors.New("input is not valid UTF-16")
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode sniffs the byte order mark, strips it, and decodes the input to
// a codepoint string. Without a BOM the input is taken to be UTF-8.
// Malformed sequences are fatal.
func Decode(b []byte) (string, error) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return decodeUTF8(b[len(bomUTF8):])
	case bytes.HasPrefix(b, bomUTF16BE):
		return decodeUTF16(b[len(bomUTF16BE):], xunicode.BigEndian)
	case bytes.HasPrefix(b, bomUTF16LE):
		return decodeUTF16(b[len(bomUTF16LE):], xunicode.LittleEndian)
	default:
		return decodeUTF8(b)
	}
}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

func decodeUTF16(b []byte, e xunicode.Endianness) (string, error) {
	if err := checkUTF16(b, e); err != nil {
		return "", err
	}
	dec := xunicode.UTF16(e, xunicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// checkUTF16 rejects odd-length input, unpaired surrogates and truncated
// surrogate pairs. The x/text decoder would substitute U+FFFD for these;
// LeafXML wants them fatal.
func checkUTF16(b []byte, e xunicode.Endianness) error {
	if len(b)%2 != 0 {
		return ErrInvalidUTF16
	}
	unit := func(i int) uint16 {
		if e == xunicode.BigEndian {
			return uint16(b[i])<<8 | uint16(b[i+1])
		}
		return uint16(b[i+1])<<8 | uint16(b[i])
	}
	for i := 0; i < len(b); {
		u := unit(i)
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+3 >= len(b) {
				return ErrInvalidUTF16
			}
			if u2 := unit(i + 2); u2 < 0xDC00 || u2 > 0xDFFF {
				return ErrInvalidUTF16
			}
			i += 4
		case u >= 0xDC00 && u <= 0xDFFF:
			return ErrInvalidUTF16
		default:
			i += 2
		}
	}
	return nil
}
