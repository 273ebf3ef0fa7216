package leafxml

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []*token {
	t.Helper()
	tok := newTokenizer(src)
	var out []*token
	for {
		tk, err := tok.next()
		require.NoError(t, err, "tokenizing %q", src)
		if tk == nil {
			return out
		}
		out = append(out, tk)
	}
}

func TestTokenizerKinds(t *testing.T) {
	src := `<?xml version="1.0"?><!DOCTYPE r><!-- note --><r>text<![CDATA[<raw>]]></r>`
	tokens := collectTokens(t, src)

	kinds := make([]tokenKind, 0, len(tokens))
	for _, tk := range tokens {
		kinds = append(kinds, tk.kind)
	}
	require.Equal(t, []tokenKind{
		tokenPI, tokenDoctype, tokenComment, tokenTag, tokenText, tokenCDATA, tokenTag,
	}, kinds)

	require.Equal(t, `<?xml version="1.0"?>`, tokens[0].text)
	require.Equal(t, "<!DOCTYPE r>", tokens[1].text)
	require.Equal(t, "<!-- note -->", tokens[2].text)
	require.Equal(t, "<r>", tokens[3].text)
	require.Equal(t, "text", tokens[4].text)
	require.Equal(t, "<![CDATA[<raw>]]>", tokens[5].text)
	require.Equal(t, "</r>", tokens[6].text)
}

func TestTokenizerLines(t *testing.T) {
	src := "<r>\nline two\r\nline three<e\nx=\"1\"/>\n</r>"
	tokens := collectTokens(t, src)

	require.Equal(t, 1, tokens[0].line, "<r> starts on line 1")
	require.Equal(t, 1, tokens[1].line, "text assembly starts on line 1")
	require.Equal(t, 3, tokens[2].line, "<e> starts on line 3")
	require.Equal(t, 4, tokens[3].line, "trailing text starts on line 4")
	require.Equal(t, 5, tokens[4].line, "</r> starts on line 5")

	require.Equal(t, "\nline two\nline three", tokens[1].text, "token text is break-normalized")
}

func TestTokenizerQuotedSpans(t *testing.T) {
	tokens := collectTokens(t, `<r a="x>y" b='<'></r>`)
	require.Equal(t, tokenTag, tokens[0].kind)
	require.Equal(t, `<r a="x>y" b='<'>`, tokens[0].text)
}

func TestTokenizerCommentDashes(t *testing.T) {
	tokens := collectTokens(t, "<!-- a -- b --><r/>")
	require.Equal(t, tokenComment, tokens[0].kind)
	require.Equal(t, "<!-- a -- b -->", tokens[0].text)
}

func TestTokenizerFailures(t *testing.T) {
	inputs := []string{
		"<",
		"<>",
		"<!-- never closed",
		"<?pi never closed",
		"<![CDATA[ never closed",
		"<!DOCTYPE r [ ]>",
		"<!DOCTYPE r ] >",
		"<!bogus>",
		"<r",
		"<r x=\"unterminated>",
	}
	for _, src := range inputs {
		tok := newTokenizer(src)
		var err error
		for {
			var tk *token
			tk, err = tok.next()
			if err != nil || tk == nil {
				break
			}
		}
		require.Error(t, err, "tokenizing %q should fail", src)
		require.ErrorIs(t, err, ErrTokenizationFailed, "tokenizing %q", src)
	}
}

func TestTokenizerDoctypeQuotedBrackets(t *testing.T) {
	// brackets inside quoted spans are fine
	tokens := collectTokens(t, `<!DOCTYPE r SYSTEM "some [thing]"><r/>`)
	require.Equal(t, tokenDoctype, tokens[0].kind)
	require.Equal(t, `<!DOCTYPE r SYSTEM "some [thing]">`, tokens[0].text)
}

func TestTokenizerInvalidCodepoint(t *testing.T) {
	tok := newTokenizer("<r>ok\nbad\x00</r>")
	_, err := tok.next() // <r>
	require.NoError(t, err)
	_, err = tok.next() // text containing NUL
	require.Error(t, err)
	pe, ok := err.(ErrParseError)
	require.True(t, ok)
	require.Equal(t, 2, pe.LineNumber, "invalid codepoint is reported on its own line")
	require.Contains(t, err.Error(), "U+0000")
}
