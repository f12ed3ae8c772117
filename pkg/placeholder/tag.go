package placeholder

import (
	"strings"
)

const (
	// HyperlinkAttr carries a Hyperlink record id on inline anchors.
	HyperlinkAttr = "data-hyperlink-id"
	// CTAAttr carries a CTAButton record id on button anchors.
	CTAAttr = "data-cta-id"
)

// LinkKind distinguishes hyperlink tags from CTA button tags.
type LinkKind int

const (
	LinkHyperlink LinkKind = iota
	LinkCTA
)

// Attr is one attribute of a scanned start tag. Lead, Eq and Quote keep the
// original spelling so unchanged tags round-trip byte for byte.
type Attr struct {
	Lead     string
	Name     string
	Eq       string
	Quote    string
	Value    string
	HasValue bool
}

// Tag is a start tag carrying a link record id.
type Tag struct {
	Name   string
	Attrs  []Attr
	Suffix string
	Kind   LinkKind
	ID     string
}

// Get returns the value of the first attribute named name (case-insensitive).
func (t *Tag) Get(name string) (string, bool) {
	if idx := t.index(name); idx >= 0 {
		return t.Attrs[idx].Value, true
	}
	return "", false
}

func (t *Tag) index(name string) int {
	for i, attr := range t.Attrs {
		if strings.EqualFold(attr.Name, name) {
			return i
		}
	}
	return -1
}

// String reassembles the tag from its parts.
func (t *Tag) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, attr := range t.Attrs {
		writeAttr(&b, attr, attr.Value)
	}
	b.WriteString(t.Suffix)
	return b.String()
}

func writeAttr(b *strings.Builder, attr Attr, value string) {
	b.WriteString(attr.Lead)
	b.WriteString(attr.Name)
	if !attr.HasValue {
		return
	}
	b.WriteString(attr.Eq)
	b.WriteString(attr.Quote)
	b.WriteString(value)
	b.WriteString(attr.Quote)
}

// scanLinkTag parses the start tag at src[i] and returns a link token when it
// carries a hyperlink or CTA id attribute.
func scanLinkTag(src string, i int) (Token, bool) {
	tag, n, ok := parseStartTag(src[i:])
	if !ok {
		return Token{}, false
	}
	if idx := tag.index(HyperlinkAttr); idx >= 0 {
		tag.Kind = LinkHyperlink
		tag.ID = tag.Attrs[idx].Value
	} else if idx := tag.index(CTAAttr); idx >= 0 {
		tag.Kind = LinkCTA
		tag.ID = tag.Attrs[idx].Value
	} else {
		return Token{}, false
	}
	return Token{Kind: TokenLink, Raw: src[i : i+n], Name: tag.ID, Tag: tag}, true
}

// parseStartTag reads "<name attr=value ...>" from the start of s. It returns
// the parsed tag and the number of bytes consumed.
func parseStartTag(s string) (*Tag, int, bool) {
	if len(s) < 3 || s[0] != '<' || !isASCIILetter(s[1]) {
		return nil, 0, false
	}
	pos := 1
	for pos < len(s) && isTagNameByte(s[pos]) {
		pos++
	}
	tag := &Tag{Name: s[1:pos]}

	for pos < len(s) {
		start := pos
		for pos < len(s) && isSpace(s[pos]) {
			pos++
		}
		lead := s[start:pos]
		if pos >= len(s) {
			return nil, 0, false
		}

		switch {
		case s[pos] == '>':
			tag.Suffix = lead + ">"
			return tag, pos + 1, true
		case strings.HasPrefix(s[pos:], "/>"):
			tag.Suffix = lead + "/>"
			return tag, pos + 2, true
		case lead == "" && len(tag.Attrs) > 0:
			// Attributes must be separated by whitespace.
			return nil, 0, false
		}

		nameStart := pos
		for pos < len(s) && !isSpace(s[pos]) && !strings.ContainsRune("=>/\"'<", rune(s[pos])) {
			pos++
		}
		if pos == nameStart {
			return nil, 0, false
		}
		attr := Attr{Lead: lead, Name: s[nameStart:pos]}

		eqStart := pos
		for pos < len(s) && isSpace(s[pos]) {
			pos++
		}
		if pos < len(s) && s[pos] == '=' {
			pos++
			for pos < len(s) && isSpace(s[pos]) {
				pos++
			}
			attr.Eq = s[eqStart:pos]
			attr.HasValue = true
			if pos >= len(s) {
				return nil, 0, false
			}
			if q := s[pos]; q == '"' || q == '\'' {
				end := strings.IndexByte(s[pos+1:], q)
				if end < 0 {
					return nil, 0, false
				}
				attr.Quote = string(q)
				attr.Value = s[pos+1 : pos+1+end]
				pos += end + 2
			} else {
				valueStart := pos
				for pos < len(s) && !isSpace(s[pos]) && s[pos] != '>' {
					pos++
				}
				attr.Value = s[valueStart:pos]
			}
		} else {
			// Valueless attribute; whitespace after it belongs to the next lead.
			pos = eqStart
		}
		tag.Attrs = append(tag.Attrs, attr)
	}
	return nil, 0, false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameByte(c byte) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9') || c == '-' || c == ':'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
