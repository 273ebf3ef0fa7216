package leafxml

import (
	"strings"

	"github.com/leafxml/leafxml/encoding"
	"github.com/lestrrat-go/pdebug"
)

// New creates a Parser over an already decoded codepoint string. The
// string must not begin with a byte order mark; feed raw bytes through
// NewFromBytes instead if they may carry one.
func New(src string) *Parser {
	p := &Parser{
		tok: newTokenizer(src),
	}
	p.frames.Push(rootFrame())
	if strings.HasPrefix(src, "\uFEFF") {
		p.err = p.error(lineError(1, ErrLeadingBOM))
	}
	return p
}

// NewFromBytes creates a Parser from raw input bytes, sniffing the byte
// order mark and decoding UTF-8 or UTF-16 input per the rules in the
// encoding package.
func NewFromBytes(b []byte) (*Parser, error) {
	src, err := encoding.Decode(b)
	if err != nil {
		return nil, err
	}
	return New(src), nil
}

// SetSourceName sets the name included in parse error diagnostics,
// typically a file name. The empty string clears it.
func (p *Parser) SetSourceName(name string) {
	p.srcName = name
}

// SourceName returns the name set with SetSourceName.
func (p *Parser) SourceName() string {
	return p.srcName
}

// ReadEvent advances to the next event. It returns true when an event
// is loaded, false at the end of the stream, and a parse error for
// malformed input. Once it has returned an error, the parser is dead and
// every further call reports the same error.
func (p *Parser) ReadEvent() (bool, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("ReadEvent")
		defer g.End()
	}

	if p.err != nil {
		p.cur = nil
		p.err = p.error(p.err)
		return false, p.err
	}

	p.cur = nil
	if len(p.queue) == 0 {
		if err := p.fill(); err != nil {
			p.err = p.error(err)
			return false, p.err
		}
	}
	if len(p.queue) == 0 {
		return false, nil
	}

	ev := p.queue[0]
	p.queue = p.queue[1:]
	p.cur = &ev
	return true, nil
}

// EventKind reports the kind of the current event.
func (p *Parser) EventKind() (EventKind, error) {
	if p.cur == nil {
		return noEvent, ErrNoEvent
	}
	return p.cur.kind, nil
}

// LineNumber reports the 1-based starting line of the current event.
func (p *Parser) LineNumber() (int, error) {
	if p.cur == nil {
		return 0, ErrNoEvent
	}
	return p.cur.line, nil
}

// ContentText returns the text of the current event, which must be a
// Text event.
func (p *Parser) ContentText() (string, error) {
	if p.cur == nil {
		return "", ErrNoEvent
	}
	if p.cur.kind != TextEvent {
		return "", ErrInvalidOperation
	}
	return p.cur.text, nil
}

// ElementName returns the local name of the current StartElement event.
func (p *Parser) ElementName() (string, error) {
	if p.cur == nil {
		return "", ErrNoEvent
	}
	if p.cur.kind != StartElementEvent {
		return "", ErrInvalidOperation
	}
	return p.cur.name, nil
}

// ElementNamespace returns the namespace of the current StartElement
// event. The second return is false when the element has no namespace.
func (p *Parser) ElementNamespace() (string, bool, error) {
	if p.cur == nil {
		return "", false, ErrNoEvent
	}
	if p.cur.kind != StartElementEvent {
		return "", false, ErrInvalidOperation
	}
	return p.cur.ns, p.cur.hasNS, nil
}

// Attrs returns the plain attributes of the current StartElement event:
// those with unprefixed names, excluding the bare word "xmlns". The map
// belongs to the parser and is invalidated by the next ReadEvent.
func (p *Parser) Attrs() (map[string]string, error) {
	if p.cur == nil {
		return nil, ErrNoEvent
	}
	if p.cur.kind != StartElementEvent {
		return nil, ErrInvalidOperation
	}
	return p.cur.attrs, nil
}

// ExternalAttrs returns the prefixed attributes of the current
// StartElement event, keyed by namespace value and then local name. The
// map belongs to the parser and is invalidated by the next ReadEvent.
func (p *Parser) ExternalAttrs() (map[string]map[string]string, error) {
	if p.cur == nil {
		return nil, ErrNoEvent
	}
	if p.cur.kind != StartElementEvent {
		return nil, ErrInvalidOperation
	}
	return p.cur.external, nil
}
