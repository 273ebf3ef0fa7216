package leafxml

import (
	"strings"

	"github.com/lestrrat-go/pdebug"
)

// error fills in the parser-level context (source name) on a parse
// error. Errors that already carry a source name pass through as is.
func (p *Parser) error(err error) error {
	pe, ok := err.(ErrParseError)
	if !ok {
		pe = ErrParseError{Err: err}
	}
	if pe.SourceName == "" {
		pe.SourceName = p.srcName
	}
	return pe
}

// fill drives the tokenizer until at least one event is buffered or the
// input is exhausted.
func (p *Parser) fill() error {
	if pdebug.Enabled {
		g := pdebug.Marker("fill")
		defer g.End()
	}

	for len(p.queue) == 0 && !p.eof {
		tok, err := p.tok.next()
		if err != nil {
			return err
		}
		if tok == nil {
			if err := p.flushContent(); err != nil {
				return err
			}
			switch p.state {
			case tagStateActive:
				return lineError(p.tok.line, ErrUnclosedTags)
			case tagStateInitial:
				return ErrParseError{Err: ErrMissingRoot}
			}
			p.eof = true
			return nil
		}

		switch tok.kind {
		case tokenComment, tokenPI, tokenDoctype:
			// validated by the tokenizer, then dropped
		case tokenCDATA:
			body := tok.text[len(cdataOpen) : len(tok.text)-len(cdataClose)]
			p.appendContent(body, tok.line)
		case tokenText:
			decoded, err := decodeEntities(tok.text, tok.line)
			if err != nil {
				return err
			}
			p.appendContent(decoded, tok.line)
		case tokenTag:
			if err := p.flushContent(); err != nil {
				return err
			}
			if err := p.processTag(tok); err != nil {
				return err
			}
		}
	}
	return nil
}

// appendContent adds a decoded span to the pending content assembly. The
// assembly keeps the line of its first token.
func (p *Parser) appendContent(s string, line int) {
	if !p.pendingSet {
		p.pendingLine = line
		p.pendingSet = true
	}
	p.pending = append(p.pending, s)
}

// flushContent turns the pending content assembly into a Text event.
// Empty assemblies vanish; outside the root element only whitespace is
// tolerated, and it is discarded.
func (p *Parser) flushContent() error {
	if !p.pendingSet {
		return nil
	}
	text := strings.Join(p.pending, "")
	line := p.pendingLine
	p.pending = p.pending[:0]
	p.pendingSet = false

	if text == "" {
		return nil
	}
	if p.state != tagStateActive {
		ln := line
		for _, c := range text {
			if c != 0x20 && c != 0x09 && c != 0x0A {
				return lineError(ln, ErrTextOutsideRoot)
			}
			if c == 0x0A {
				ln++
			}
		}
		return nil
	}

	text = toNFC(normalizeBreaks(text))
	p.queue = append(p.queue, event{kind: TextEvent, line: line, text: text})
	return nil
}

// processTag runs one tag token through the element stack, the namespace
// stack and name resolution, and buffers the resulting event(s). An
// empty tag buffers a StartElement and an EndElement on the same line.
func (p *Parser) processTag(tok *token) error {
	if pdebug.Enabled {
		g := pdebug.Marker("processTag")
		defer g.End()
	}

	tag, err := parseTag(tok.text, tok.line)
	if err != nil {
		return err
	}

	if tag.kind == tagStart || tag.kind == tagEmpty {
		if p.state == tagStateFinished {
			return lineError(tag.line, ErrMultipleRoot)
		}
		p.elements.Push(tag.name)
		p.state = tagStateActive
	}
	if tag.kind == tagEnd || tag.kind == tagEmpty {
		if p.state != tagStateActive {
			return lineError(tag.line, ErrTagPairing)
		}
		if p.elements.Peek() != tag.name {
			return lineError(tag.line, ErrTagPairing)
		}
		p.elements.Pop()
		if p.elements.Len() == 0 {
			p.state = tagStateFinished
		}
	}

	if tag.kind == tagStart || tag.kind == tagEmpty {
		frame, err := overlayFrame(p.frames.Peek(), tag.attrs)
		if err != nil {
			return err
		}
		p.frames.Push(frame)
	}

	top := nsFrame(p.frames.Peek())
	local, uri, hasNS, err := resolveElement(tag.name, top)
	if err != nil {
		return lineError(tag.line, err)
	}

	var plain map[string]string
	var external map[string]map[string]string
	if tag.kind != tagEnd {
		plain = plainAttrs(tag.attrs)
		external, err = externalAttrs(tag.attrs, top)
		if err != nil {
			return err
		}
	}

	if tag.kind == tagEnd || tag.kind == tagEmpty {
		p.frames.Pop()
	}

	if tag.kind == tagStart || tag.kind == tagEmpty {
		p.queue = append(p.queue, event{
			kind:     StartElementEvent,
			line:     tag.line,
			name:     local,
			ns:       uri,
			hasNS:    hasNS,
			attrs:    plain,
			external: external,
		})
	}
	if tag.kind == tagEnd || tag.kind == tagEmpty {
		p.queue = append(p.queue, event{kind: EndElementEvent, line: tag.line})
	}
	return nil
}
