package leafxml

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dumper drives a Parser to exhaustion and writes one line per event in
// the parse-trace format used by the test drivers. Namespace values are
// replaced by small indices, assigned in order of first appearance, and
// the index table follows the events. Index 0 means "no namespace".
type Dumper struct{}

var (
	traceTextEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	traceAttrEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`)
)

func (d Dumper) Dump(out io.Writer, p *Parser) error {
	index := map[string]int{}
	var order []string
	nsIndex := func(uri string) int {
		if i, ok := index[uri]; ok {
			return i
		}
		order = append(order, uri)
		index[uri] = len(order)
		return len(order)
	}

	for {
		ok, err := p.ReadEvent()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		kind, err := p.EventKind()
		if err != nil {
			return err
		}
		line, err := p.LineNumber()
		if err != nil {
			return err
		}

		switch kind {
		case StartElementEvent:
			if err := d.dumpStart(out, p, line, nsIndex); err != nil {
				return err
			}
		case TextEvent:
			text, err := p.ContentText()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d: TEXT %s\n", line, traceTextEscaper.Replace(text))
		case EndElementEvent:
			fmt.Fprintf(out, "%d: END\n", line)
		}
	}

	for i, uri := range order {
		fmt.Fprintf(out, "%d: %s\n", i+1, uri)
	}
	return nil
}

func (d Dumper) dumpStart(out io.Writer, p *Parser, line int, nsIndex func(string) int) error {
	name, err := p.ElementName()
	if err != nil {
		return err
	}
	idx := 0
	uri, has, err := p.ElementNamespace()
	if err != nil {
		return err
	}
	if has {
		idx = nsIndex(uri)
	}
	fmt.Fprintf(out, "%d: BEGIN %d:%s", line, idx, name)

	attrs, err := p.Attrs()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(attrs))
	for n := range attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(out, ` 0:%s="%s"`, n, traceAttrEscaper.Replace(attrs[n]))
	}

	external, err := p.ExternalAttrs()
	if err != nil {
		return err
	}
	type extAttr struct {
		idx   int
		name  string
		value string
	}
	var ext []extAttr
	for u, byLocal := range external {
		i := nsIndex(u)
		for n, v := range byLocal {
			ext = append(ext, extAttr{idx: i, name: n, value: v})
		}
	}
	sort.Slice(ext, func(i, j int) bool {
		if ext[i].idx != ext[j].idx {
			return ext[i].idx < ext[j].idx
		}
		return ext[i].name < ext[j].name
	})
	for _, a := range ext {
		fmt.Fprintf(out, ` %d:%s="%s"`, a.idx, a.name, traceAttrEscaper.Replace(a.value))
	}

	fmt.Fprintln(out)
	return nil
}
