package leafxml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBreaks(t *testing.T) {
	inputs := map[string]string{
		"a\r\nb":         "a\nb",
		"a\r\u0085b":    "a\nb",
		"a\rb":           "a\nb",
		"a\u0085b":      "a\nb",
		"a\u2028b":       "a\nb",
		"a\r\r\nb":       "a\n\nb",
		"a\nb":           "a\nb",
		"no breaks":      "no breaks",
		"\r\u0085\r\n\u2028": "\n\n\n",
	}
	for input, expected := range inputs {
		require.Equal(t, expected, normalizeBreaks(input), "normalizeBreaks(%q)", input)
	}
}

func TestCountBreaks(t *testing.T) {
	require.Equal(t, 0, countBreaks("abc"))
	require.Equal(t, 1, countBreaks("a\r\nb"))
	require.Equal(t, 2, countBreaks("\r\r\n"))
	require.Equal(t, 3, countBreaks("x\ny\u0085z\u2028"))
}

func TestCompressWhitespace(t *testing.T) {
	inputs := map[string]string{
		"  a  b  ":           "a b",
		"a\t\n\rb":           "a b",
		"a b":                "a b",
		"   ":                "",
		"":                   "",
		"\ta\t":              "a",
		"a \u00a0 b":         "a \u00a0 b",
	}
	for input, expected := range inputs {
		require.Equal(t, expected, compressWhitespace(input), "compressWhitespace(%q)", input)
	}
}

func TestToNFC(t *testing.T) {
	// e + combining acute composes to U+00E9
	require.Equal(t, "\u00e9", toNFC("e\u0301"))
	// NFC is idempotent
	require.Equal(t, "\u00e9", toNFC("\u00e9"))
}
