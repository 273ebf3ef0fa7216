package leafxml

// validCodepoint reports whether c belongs to the set of codepoints
// LeafXML admits anywhere in a document. The set is the XML 1.0 Char
// production narrowed to Unicode scalar values, minus DEL and the C1
// controls other than NEL (U+007F-U+0084, U+0086-U+009F), minus the
// noncharacters U+FDD0-U+FDEF and any codepoint whose low 16 bits are
// FFFE or FFFF.
func validCodepoint(c rune) bool {
	if c&0xFFFF == 0xFFFE || c&0xFFFF == 0xFFFF {
		return false
	}
	switch {
	case c == 0x09 || c == 0x0A || c == 0x0D:
	case c >= 0x20 && c <= 0x7E:
	case c == 0x85:
	case c >= 0xA0 && c <= 0xD7FF:
	case c >= 0xE000 && c <= 0xFDCF:
	case c >= 0xFDF0 && c <= 0x10FFFD:
	default:
		return false
	}
	return true
}

// validString reports whether every codepoint of s passes validCodepoint.
// The empty string passes.
func validString(s string) bool {
	for _, c := range s {
		if !validCodepoint(c) {
			return false
		}
	}
	return true
}

// firstInvalid returns the byte offset and value of the first codepoint
// of s that fails validCodepoint.
func firstInvalid(s string) (int, rune, bool) {
	for i, c := range s {
		if !validCodepoint(c) {
			return i, c, true
		}
	}
	return 0, 0, false
}

// isNameChar reports whether c may appear in an XML name. The ranges are
// the NameChar production of XML 1.0 fifth edition.
func isNameChar(c rune) bool {
	switch {
	case c == ':' || c == '_' || c == '-' || c == '.':
	case c >= 'A' && c <= 'Z':
	case c >= 'a' && c <= 'z':
	case c >= '0' && c <= '9':
	case c == 0xB7:
	case c >= 0xC0 && c <= 0xD6:
	case c >= 0xD8 && c <= 0xF6:
	case c >= 0xF8 && c <= 0x2FF:
	case c >= 0x300 && c <= 0x36F:
	case c >= 0x370 && c <= 0x37D:
	case c >= 0x37F && c <= 0x1FFF:
	case c >= 0x200C && c <= 0x200D:
	case c >= 0x203F && c <= 0x2040:
	case c >= 0x2070 && c <= 0x218F:
	case c >= 0x2C00 && c <= 0x2FEF:
	case c >= 0x3001 && c <= 0xD7FF:
	case c >= 0xF900 && c <= 0xFDCF:
	case c >= 0xFDF0 && c <= 0xFFFD:
	case c >= 0x10000 && c <= 0xEFFFF:
	default:
		return false
	}
	return true
}

// nameFirstAllowed reports whether c may lead a name. Digits, the hyphen,
// the period, and the combiner codepoints are name characters but may not
// appear first.
func nameFirstAllowed(c rune) bool {
	if !isNameChar(c) {
		return false
	}
	switch {
	case c == '-' || c == '.':
	case c >= '0' && c <= '9':
	case c == 0xB7:
	case c >= 0x300 && c <= 0x36F:
	case c == 0x203F || c == 0x2040:
	default:
		return true
	}
	return false
}

// validName reports whether s is a well-formed XML name.
func validName(s string) bool {
	if s == "" {
		return false
	}
	first := true
	for _, c := range s {
		if first {
			if !nameFirstAllowed(c) {
				return false
			}
			first = false
			continue
		}
		if !isNameChar(c) {
			return false
		}
	}
	return true
}
