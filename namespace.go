package leafxml

import "strings"

// Reserved namespace values. They may only ever be bound to their own
// prefixes.
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// nsFrame maps prefixes to namespace values. The empty prefix, when
// present, is the default element namespace. Frames are immutable once
// pushed so elements that declare nothing can share their parent frame.
type nsFrame map[string]string

func rootFrame() nsFrame {
	return nsFrame{
		"xml":   XMLNamespace,
		"xmlns": XMLNSNamespace,
	}
}

// splitQName splits s into prefix and local part. A name qualifies only
// when it contains exactly one colon with a valid name on both sides;
// anything else is treated as a bare name.
func splitQName(s string) (prefix, local string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return "", s, false
	}
	if strings.IndexByte(s[i+1:], ':') >= 0 {
		return "", s, false
	}
	p, l := s[:i], s[i+1:]
	if !validName(p) || !validName(l) {
		return "", s, false
	}
	return p, l, true
}

// declaredPrefix reports whether attr name declares a namespace, and for
// which prefix. The bare word "xmlns" declares the default namespace
// (empty prefix).
func declaredPrefix(name string) (string, bool) {
	if name == "xmlns" {
		return "", true
	}
	if p, l, ok := splitQName(name); ok && p == "xmlns" {
		return l, true
	}
	return "", false
}

// overlayFrame walks the attributes of a start or empty tag and returns
// the namespace frame for the element: the parent frame itself when the
// tag declares nothing, otherwise a copy overlaid with the new
// declarations.
func overlayFrame(top nsFrame, attrs []parsedAttr) (nsFrame, error) {
	var decls map[string]string
	for _, a := range attrs {
		prefix, isDecl := declaredPrefix(a.name)
		if !isDecl {
			continue
		}
		if a.value == "" {
			return nil, lineError(a.line, ErrEmptyNamespace)
		}
		if prefix == "xmlns" {
			return nil, lineError(a.line, ErrMapXMLNSPrefix)
		}
		if a.value == XMLNSNamespace {
			return nil, lineError(a.line, ErrReservedXMLNSValue)
		}
		if prefix == "xml" {
			if a.value != XMLNamespace {
				return nil, lineError(a.line, ErrReservedXMLValue)
			}
		} else if a.value == XMLNamespace {
			return nil, lineError(a.line, ErrReservedXMLValue)
		}
		if _, dup := decls[prefix]; dup {
			return nil, lineError(a.line, ErrPrefixRedefined)
		}
		if decls == nil {
			decls = map[string]string{}
		}
		decls[prefix] = a.value
	}
	if len(decls) == 0 {
		return top, nil
	}
	nf := make(nsFrame, len(top)+len(decls))
	for p, v := range top {
		nf[p] = v
	}
	for p, v := range decls {
		nf[p] = v
	}
	return nf, nil
}

// resolveElement resolves an element name against frame. Prefixed names
// must have a mapped prefix; bare names take the default namespace when
// one is in scope.
func resolveElement(name string, frame nsFrame) (local, uri string, hasNS bool, err error) {
	if p, l, ok := splitQName(name); ok {
		u, found := frame[p]
		if !found {
			return "", "", false, ErrUnmappedPrefix
		}
		return l, u, true, nil
	}
	if u, found := frame[""]; found {
		return name, u, true, nil
	}
	return name, "", false, nil
}

// plainAttrs collects the attributes with unprefixed names, excluding
// the bare word "xmlns". The default namespace never applies to
// attributes.
func plainAttrs(attrs []parsedAttr) map[string]string {
	m := make(map[string]string)
	for _, a := range attrs {
		if a.name == "xmlns" {
			continue
		}
		if _, _, ok := splitQName(a.name); ok {
			continue
		}
		m[a.name] = a.value
	}
	return m
}

// externalAttrs resolves the prefixed attributes (prefix other than
// "xmlns") into a namespace-value keyed two-level map. Two attributes of
// the same tag that land on the same (namespace, local) slot must have
// arrived through aliased prefixes, which is an error.
func externalAttrs(attrs []parsedAttr, frame nsFrame) (map[string]map[string]string, error) {
	m := make(map[string]map[string]string)
	for _, a := range attrs {
		p, l, ok := splitQName(a.name)
		if !ok || p == "xmlns" {
			continue
		}
		u, found := frame[p]
		if !found {
			return nil, lineError(a.line, ErrUnmappedPrefix)
		}
		byLocal := m[u]
		if byLocal == nil {
			byLocal = make(map[string]string)
			m[u] = byLocal
		}
		if _, dup := byLocal[l]; dup {
			return nil, lineError(a.line, ErrAliasedAttribute)
		}
		byLocal[l] = a.value
	}
	return m, nil
}
