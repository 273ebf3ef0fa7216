package leafxml

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeBreaks rewrites every line-break sequence to a single U+000A.
// CR LF and CR NEL collapse to one LF; stray CR, NEL (U+0085) and LS
// (U+2028) each become LF.
func normalizeBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\u0085\u2028") {
		return s
	}
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case 0x0D:
			if i+1 < len(rs) && (rs[i+1] == 0x0A || rs[i+1] == 0x85) {
				i++
			}
			b.WriteRune(0x0A)
		case 0x85, 0x2028:
			b.WriteRune(0x0A)
		default:
			b.WriteRune(rs[i])
		}
	}
	return b.String()
}

// countBreaks returns the number of line-break sequences in s, counted
// the same way normalizeBreaks rewrites them.
func countBreaks(s string) int {
	return strings.Count(normalizeBreaks(s), "\n")
}

// compressWhitespace replaces every maximal run of space, tab, LF and CR
// with a single space, then strips one leading and one trailing space.
// Applied to attribute values after entity decoding.
func compressWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	run := false
	for _, c := range s {
		if c == 0x20 || c == 0x09 || c == 0x0A || c == 0x0D {
			run = true
			continue
		}
		if run {
			b.WriteByte(' ')
			run = false
		}
		b.WriteRune(c)
	}
	if run {
		b.WriteByte(' ')
	}
	out := b.String()
	out = strings.TrimPrefix(out, " ")
	return strings.TrimSuffix(out, " ")
}

// toNFC brings s into Unicode Normalization Form C. Names, attribute
// values and content text all pass through here before they are handed
// to the client.
func toNFC(s string) string {
	return norm.NFC.String(s)
}
