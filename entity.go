package leafxml

import (
	"strconv"
	"strings"
)

// decodeEntities expands entity escapes in s, which must already be
// line-break normalized. line is the 1-based line of the first codepoint
// of s and is advanced over embedded LFs so that per-escape failures
// point at the right line.
func decodeEntities(s string, line int) (string, error) {
	if !strings.ContainsRune(s, '&') {
		return s, nil
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		c := rs[i]
		if c == 0x0A {
			line++
			b.WriteRune(c)
			i++
			continue
		}
		if c != '&' {
			b.WriteRune(c)
			i++
			continue
		}

		// scan for the terminating ';'; a second '&' or a line break
		// before it means this ampersand is not part of an escape
		j := i + 1
		for j < len(rs) && rs[j] != ';' && rs[j] != '&' && rs[j] != 0x0A {
			j++
		}
		if j >= len(rs) || rs[j] != ';' {
			return "", lineError(line, ErrBareAmpersand)
		}
		r, err := decodeEscape(string(rs[i+1 : j]))
		if err != nil {
			return "", lineError(line, err)
		}
		b.WriteRune(r)
		i = j + 1
	}
	return b.String(), nil
}

// decodeEscape decodes the body of a single escape (the part between
// '&' and ';').
func decodeEscape(body string) (rune, error) {
	switch body {
	case "amp":
		return '&', nil
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "apos":
		return '\'', nil
	case "quot":
		return '"', nil
	}

	if strings.HasPrefix(body, "#x") {
		digits := body[2:]
		if len(digits) < 1 || len(digits) > 6 {
			return 0, ErrInvalidEscape
		}
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return 0, ErrInvalidEscape
		}
		if !validCodepoint(rune(v)) {
			return 0, ErrEscapeOutOfRange
		}
		return rune(v), nil
	}

	if strings.HasPrefix(body, "#") {
		digits := body[1:]
		if len(digits) < 1 || len(digits) > 8 {
			return 0, ErrInvalidEscape
		}
		v, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return 0, ErrInvalidEscape
		}
		if !validCodepoint(rune(v)) {
			return 0, ErrEscapeOutOfRange
		}
		return rune(v), nil
	}

	return 0, ErrUnknownEntity
}
