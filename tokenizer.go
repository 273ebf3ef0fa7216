package leafxml

import (
	"strings"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/strcursor"
)

type tokenKind int

const (
	tokenComment tokenKind = iota
	tokenPI
	tokenDoctype
	tokenCDATA
	tokenTag
	tokenText
)

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// token is a single lexeme. text is line-break normalized; line is the
// 1-based line of the token's first codepoint.
type token struct {
	kind tokenKind
	text string
	line int
}

// tokenizer is a lazy producer of tokens over the decoded codepoint
// stream. It owns the only cursor into the input and the current line
// counter.
type tokenizer struct {
	cur  *strcursor.Cursor
	line int
}

func newTokenizer(src string) *tokenizer {
	return &tokenizer{
		cur:  strcursor.New([]byte(src)),
		line: 1,
	}
}

// next returns the next token, or nil once the input is exhausted.
func (t *tokenizer) next() (*token, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("next")
		defer g.End()
	}

	if t.cur.Done() {
		return nil, nil
	}

	start := t.line
	var kind tokenKind
	var text string
	var ok bool
	switch {
	case t.cur.HasPrefix("<!--"):
		kind = tokenComment
		text, ok = t.scanClosed(4, "-->")
	case t.cur.HasPrefix("<?"):
		kind = tokenPI
		text, ok = t.scanClosed(2, "?>")
	case t.cur.HasPrefix("<!DOCTYPE"):
		kind = tokenDoctype
		text, ok = t.scanDoctype()
	case t.cur.HasPrefix(cdataOpen):
		kind = tokenCDATA
		text, ok = t.scanClosed(len(cdataOpen), cdataClose)
	case t.cur.Peek(1) == '<':
		kind = tokenTag
		text, ok = t.scanTag()
	default:
		kind = tokenText
		text, ok = t.scanText(), true
	}
	if !ok {
		// nothing matched at this '<'
		return nil, lineError(start, ErrTokenizationFailed)
	}

	if off, bad, found := firstInvalid(text); found {
		return nil, lineError(start+countBreaks(text[:off]), ErrInvalidCodepoint{Codepoint: bad})
	}

	text = normalizeBreaks(text)
	t.line = start + strings.Count(text, "\n")

	if pdebug.Enabled {
		pdebug.Printf("token kind=%d line=%d %q", kind, start, text)
	}
	return &token{kind: kind, text: text, line: start}, nil
}

// peekMatch reports whether the runes of want appear starting at the
// 1-based lookahead position i.
func (t *tokenizer) peekMatch(i int, want []rune) bool {
	for j, c := range want {
		if !t.cur.HasChars(i+j) || t.cur.Peek(i+j) != c {
			return false
		}
	}
	return true
}

// scanClosed consumes a lexeme that begins with a fixed prefix of
// prefixLen codepoints and runs through the first occurrence of closer.
func (t *tokenizer) scanClosed(prefixLen int, closer string) (string, bool) {
	want := []rune(closer)
	for i := prefixLen + 1; t.cur.HasChars(i); i++ {
		if t.peekMatch(i, want) {
			return t.cur.Consume(i + len(want) - 1), true
		}
	}
	return "", false
}

// scanDoctype consumes a '<!DOCTYPE ... >' lexeme. Outside quoted spans
// the body may not contain '<', '[' or ']'; an embedded internal subset
// is not accepted.
func (t *tokenizer) scanDoctype() (string, bool) {
	i := len("<!DOCTYPE") + 1
	for {
		if !t.cur.HasChars(i) {
			return "", false
		}
		switch c := t.cur.Peek(i); c {
		case '>':
			return t.cur.Consume(i), true
		case '"', '\'':
			j, ok := t.scanQuoted(i, c)
			if !ok {
				return "", false
			}
			i = j
		case '<', '[', ']':
			return "", false
		default:
			i++
		}
	}
}

// scanTag consumes a tag lexeme: '<', one codepoint that is none of
// '!', '?' or '>', then spans of plain codepoints interleaved with
// quoted spans, through the closing '>'.
func (t *tokenizer) scanTag() (string, bool) {
	if !t.cur.HasChars(2) {
		return "", false
	}
	if c := t.cur.Peek(2); c == '!' || c == '?' || c == '>' {
		return "", false
	}
	i := 3
	for {
		if !t.cur.HasChars(i) {
			return "", false
		}
		switch c := t.cur.Peek(i); c {
		case '>':
			return t.cur.Consume(i), true
		case '"', '\'':
			j, ok := t.scanQuoted(i, c)
			if !ok {
				return "", false
			}
			i = j
		case '<':
			return "", false
		default:
			i++
		}
	}
}

// scanQuoted walks a quoted span opened by qch at lookahead position i
// and returns the position just past the closing quote.
func (t *tokenizer) scanQuoted(i int, qch rune) (int, bool) {
	j := i + 1
	for {
		if !t.cur.HasChars(j) {
			return 0, false
		}
		if t.cur.Peek(j) == qch {
			return j + 1, true
		}
		j++
	}
}

// scanText consumes a maximal run of codepoints not containing '<'.
// Only called when the current codepoint is not '<', so the run is
// never empty.
func (t *tokenizer) scanText() string {
	i := 1
	for t.cur.HasChars(i) && t.cur.Peek(i) != '<' {
		i++
	}
	return t.cur.Consume(i - 1)
}
