package placeholder

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/format"
	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Formatter formats declared variable values. *format.Registry satisfies it.
type Formatter interface {
	Format(value model.Value, kind model.FormatterKind) string
}

type scope struct {
	item  model.Value
	index int
}

type execState struct {
	prog      *Program
	results   map[string]bool
	values    model.Values
	formatter Formatter
	expanding []string
	scopes    []scope
	out       strings.Builder
}

// Execute walks the compiled tree once. results holds the evaluated
// conditions; conditions missing from it count as false. A nil formatter
// selects the built-in formatters.
func (p *Program) Execute(results map[string]bool, values model.Values, formatter Formatter) string {
	if formatter == nil {
		formatter = format.Default()
	}
	s := &execState{
		prog:      p,
		results:   results,
		values:    values,
		formatter: formatter,
	}
	s.walk(p.nodes)
	return s.out.String()
}

func (s *execState) walk(nodes []node) {
	for _, n := range nodes {
		switch typed := n.(type) {
		case *textNode:
			s.out.WriteString(typed.raw)
		case *variableNode:
			s.variable(typed)
		case *conditionBlock:
			s.block(typed)
		case *conditionMarker:
			s.marker(typed)
		case *loopBlock:
			s.loop(typed)
		case *linkNode:
			s.link(typed)
		}
	}
}

func (s *execState) block(n *conditionBlock) {
	if s.isExpanding(n.name) {
		s.out.WriteString(n.raw)
		return
	}
	if s.results[n.name] {
		s.walk(n.then)
		return
	}
	if n.inlineElse {
		s.walk(n.otherwise)
		return
	}
	if s.prog.conds[n.name].HasElse {
		s.expand(n.name, s.prog.branches[n.name].other)
	}
}

func (s *execState) marker(n *conditionMarker) {
	if s.isExpanding(n.name) {
		s.out.WriteString(n.raw)
		return
	}
	if s.results[n.name] {
		s.expand(n.name, s.prog.branches[n.name].content)
		return
	}
	if s.prog.conds[n.name].HasElse {
		s.expand(n.name, s.prog.branches[n.name].other)
	}
}

// expand walks branch content of a condition. A condition reached again
// while its own branch content is being expanded is emitted literally.
func (s *execState) expand(name string, nodes []node) {
	s.expanding = append(s.expanding, name)
	s.walk(nodes)
	s.expanding = s.expanding[:len(s.expanding)-1]
}

func (s *execState) isExpanding(name string) bool {
	for _, entry := range s.expanding {
		if entry == name {
			return true
		}
	}
	return false
}

func (s *execState) loop(n *loopBlock) {
	value, ok := s.scoped(n.name)
	if !ok {
		value, _ = s.values.Lookup(n.name)
	}
	items := value.Items()
	if len(items) == 0 {
		if n.hasElse {
			s.walk(n.empty)
		}
		return
	}
	for i, item := range items {
		s.scopes = append(s.scopes, scope{item: item, index: i})
		s.walk(n.body)
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *execState) variable(n *variableNode) {
	s.out.WriteString(s.resolve(n))
}

func (s *execState) resolve(n *variableNode) string {
	if value, ok := s.scoped(n.name); ok {
		return value.String()
	}
	if v, ok := s.prog.vars[n.name]; ok {
		value, _ := s.values.Lookup(v.Name)
		return s.formatter.Format(value, v.Formatter)
	}
	return n.raw
}

// scoped resolves name against the loop scopes, innermost first.
func (s *execState) scoped(name string) (model.Value, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		sc := s.scopes[i]
		switch {
		case name == "this":
			return sc.item, true
		case name == "@index":
			return model.StringValue(strconv.Itoa(sc.index)), true
		case strings.HasPrefix(name, "this."):
			return walkFields(sc.item, strings.Split(name[len("this."):], "."))
		}
		parts := strings.Split(name, ".")
		if _, ok := sc.item.Field(parts[0]); ok {
			return walkFields(sc.item, parts)
		}
	}
	return model.Value{}, false
}

func walkFields(v model.Value, path []string) (model.Value, bool) {
	current := v
	for _, part := range path {
		next, ok := current.Field(part)
		if !ok {
			return model.Value{}, false
		}
		current = next
	}
	return current, true
}

// link rebinds href to the current record URL. Other attributes keep their
// position and spelling; the label following the tag is never touched.
func (s *execState) link(n *linkNode) {
	url, found := s.prog.linkURL(n.tag)

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.tag.Name)

	hrefWritten := false
	idAttr := HyperlinkAttr
	if n.tag.Kind == LinkCTA {
		idAttr = CTAAttr
	}
	for i, attr := range n.tag.Attrs {
		switch {
		case found && strings.EqualFold(attr.Name, "href"):
			if hrefWritten {
				continue
			}
			if !attr.HasValue || attr.Quote == "" {
				attr.HasValue, attr.Eq, attr.Quote = true, "=", `"`
			}
			writeAttr(&b, attr, html.EscapeString(url))
			hrefWritten = true
			continue
		case found && !hrefWritten && strings.EqualFold(attr.Name, idAttr) && n.tag.index("href") < 0:
			writeAttr(&b, Attr{Lead: " ", Name: "href", Eq: "=", Quote: `"`, HasValue: true}, html.EscapeString(url))
			hrefWritten = true
		}
		value := attr.Value
		if nodes := n.attrs[i]; nodes != nil {
			value = s.attrValue(nodes)
		}
		writeAttr(&b, attr, value)
	}
	b.WriteString(n.tag.Suffix)
	s.out.WriteString(b.String())
}

func (s *execState) attrValue(nodes []node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch typed := n.(type) {
		case *variableNode:
			b.WriteString(s.resolve(typed))
		case *textNode:
			b.WriteString(typed.raw)
		}
	}
	return b.String()
}

func (p *Program) linkURL(tag *Tag) (string, bool) {
	if tag.Kind == LinkCTA {
		url, ok := p.ctas[tag.ID]
		return url, ok
	}
	url, ok := p.links[tag.ID]
	return url, ok
}
