package leafxml

import "strings"

type tagKind int

const (
	tagStart tagKind = iota
	tagEmpty
	tagEnd
)

// parsedAttr is one attribute of a tag. name and value are in NFC; the
// value has been entity-decoded and whitespace-compressed. line is the
// 1-based line the value starts on.
type parsedAttr struct {
	name  string
	value string
	line  int
}

// parsedTag is the result of taking a tag token apart.
type parsedTag struct {
	kind  tagKind
	name  string
	attrs []parsedAttr
	line  int
}

func isTagWS(c rune) bool {
	return c == 0x20 || c == 0x09 || c == 0x0A
}

// parseTag splits a tag token (delimiters included, line-break
// normalized) into its kind, element name and attribute list. line is
// the token's starting line.
func parseTag(text string, line int) (*parsedTag, error) {
	tagLine := line
	body := []rune(text)
	body = body[1 : len(body)-1] // tokenizer guarantees '<' ... '>'

	kind := tagStart
	if len(body) > 0 && body[0] == '/' {
		kind = tagEnd
		body = body[1:]
	}
	if len(body) > 0 && body[len(body)-1] == '/' {
		if kind == tagEnd {
			return nil, lineError(tagLine, ErrTagParseFailed)
		}
		kind = tagEmpty
		body = body[:len(body)-1]
	}

	// element name runs to the first whitespace codepoint
	i := 0
	for i < len(body) && !isTagWS(body[i]) {
		i++
	}
	name := toNFC(string(body[:i]))
	if !validName(name) {
		return nil, lineError(tagLine, ErrInvalidTagName)
	}

	tag := parsedTag{kind: kind, name: name, line: tagLine}
	seen := map[string]struct{}{}
	ln := tagLine
	for i < len(body) {
		// an attribute item requires at least one leading whitespace
		nws := 0
		for i < len(body) && isTagWS(body[i]) {
			if body[i] == 0x0A {
				ln++
			}
			i++
			nws++
		}
		if i >= len(body) {
			break
		}
		if nws == 0 {
			return nil, lineError(ln, ErrTagParseFailed)
		}

		nameLine := ln
		start := i
		for i < len(body) && !isTagWS(body[i]) && body[i] != '=' {
			i++
		}
		if i == start {
			return nil, lineError(nameLine, ErrTagParseFailed)
		}
		aname := toNFC(string(body[start:i]))
		if !validName(aname) {
			return nil, lineError(nameLine, ErrInvalidAttributeName)
		}

		for i < len(body) && isTagWS(body[i]) {
			if body[i] == 0x0A {
				ln++
			}
			i++
		}
		if i >= len(body) || body[i] != '=' {
			return nil, lineError(ln, ErrTagParseFailed)
		}
		i++
		for i < len(body) && isTagWS(body[i]) {
			if body[i] == 0x0A {
				ln++
			}
			i++
		}
		valueLine := ln
		if i >= len(body) || (body[i] != '"' && body[i] != '\'') {
			return nil, lineError(valueLine, ErrTagParseFailed)
		}
		qch := body[i]
		i++
		vstart := i
		for i < len(body) && body[i] != qch {
			if body[i] == 0x0A {
				ln++
			}
			i++
		}
		if i >= len(body) {
			return nil, lineError(valueLine, ErrTagParseFailed)
		}
		raw := string(body[vstart:i])
		i++

		if strings.ContainsRune(raw, '<') {
			return nil, lineError(valueLine, ErrUnescapedLt)
		}
		decoded, err := decodeEntities(raw, valueLine)
		if err != nil {
			return nil, err
		}
		value := toNFC(compressWhitespace(decoded))

		if _, dup := seen[aname]; dup {
			return nil, lineError(nameLine, ErrDuplicateAttribute)
		}
		seen[aname] = struct{}{}
		tag.attrs = append(tag.attrs, parsedAttr{name: aname, value: value, line: valueLine})
	}

	if kind == tagEnd && len(tag.attrs) > 0 {
		return nil, lineError(tag.attrs[0].line, ErrEndTagAttributes)
	}
	return &tag, nil
}
