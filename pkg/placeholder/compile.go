package placeholder

import (
	"sort"
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Definitions groups the declarations a body is compiled against.
type Definitions struct {
	Variables  []model.Variable
	Conditions []model.ConditionDefinition
	Hyperlinks []model.Hyperlink
	CTAButtons []model.CTAButton
}

// DefinitionsOf extracts the declarations of tpl.
func DefinitionsOf(tpl model.EmailTemplate) Definitions {
	return Definitions{
		Variables:  tpl.Variables,
		Conditions: tpl.Conditions,
		Hyperlinks: tpl.Hyperlinks,
		CTAButtons: tpl.CTAButtons,
	}
}

type node interface{}

type textNode struct {
	raw string
}

type variableNode struct {
	name string
	raw  string
}

// conditionBlock is a paired span. raw holds the full source of the span
// including both markers.
type conditionBlock struct {
	name       string
	raw        string
	then       []node
	otherwise  []node
	inlineElse bool
}

// conditionMarker is a self-closing marker.
type conditionMarker struct {
	name string
	raw  string
}

type loopBlock struct {
	name    string
	raw     string
	body    []node
	empty   []node
	hasElse bool
}

type linkNode struct {
	tag   *Tag
	raw   string
	attrs [][]node
}

type branch struct {
	content []node
	other   []node
}

// Program is a compiled body. It is immutable and safe for concurrent use.
type Program struct {
	nodes    []node
	vars     map[string]model.Variable
	conds    map[string]model.ConditionDefinition
	branches map[string]branch
	links    map[string]string
	ctas     map[string]string
}

// Compile tokenizes body, pairs condition and loop markers and builds the
// evaluation tree. Branch content of every condition is compiled as well.
// Compile never fails: anything it cannot interpret stays literal text.
func Compile(body string, defs Definitions) *Program {
	p := &Program{
		vars:     make(map[string]model.Variable, len(defs.Variables)),
		conds:    make(map[string]model.ConditionDefinition, len(defs.Conditions)),
		branches: make(map[string]branch, len(defs.Conditions)),
		links:    make(map[string]string, len(defs.Hyperlinks)),
		ctas:     make(map[string]string, len(defs.CTAButtons)),
	}

	for _, v := range defs.Variables {
		if _, exists := p.vars[v.Name]; !exists {
			p.vars[v.Name] = v
		}
	}
	order := make([]string, 0, len(defs.Conditions))
	for _, c := range defs.Conditions {
		if _, exists := p.conds[c.Name]; exists {
			continue
		}
		p.conds[c.Name] = c
		order = append(order, c.Name)
	}
	for _, link := range defs.Hyperlinks {
		if _, exists := p.links[link.ID]; !exists {
			p.links[link.ID] = link.URL
		}
	}
	for _, button := range defs.CTAButtons {
		if _, exists := p.ctas[button.ID]; !exists {
			p.ctas[button.ID] = button.URL
		}
	}

	p.nodes = p.compile(body, order)
	for _, name := range order {
		c := p.conds[name]
		p.branches[name] = branch{
			content: p.compile(c.Content, order),
			other:   p.compile(c.ElseContent, order),
		}
	}
	return p
}

func (p *Program) compile(src string, order []string) []node {
	if src == "" {
		return nil
	}
	tokens := Scan(src)
	b := &builder{
		src:    src,
		tokens: tokens,
		prog:   p,
		pairs:  pairMarkers(tokens, order, p.loopAllowed),
	}
	nodes, _, _ := b.build(0, len(tokens), false)
	return nodes
}

func (p *Program) loopAllowed(name string) bool {
	if _, ok := p.vars[name]; ok {
		return true
	}
	return name == "this" || strings.HasPrefix(name, "this.")
}

type span struct {
	open, close int
}

func (s span) crosses(o span) bool {
	return (s.open < o.open && o.open < s.close && s.close < o.close) ||
		(o.open < s.open && s.open < o.close && o.close < s.close)
}

// pairMarkers returns open index → close index for every accepted span.
// Conditions pair first, in declaration order, each taking the leftmost open
// and the nearest following close of the same name. Loops pair by nesting
// afterwards. A candidate span that crosses an accepted span is rejected.
func pairMarkers(tokens []Token, order []string, loopAllowed func(string) bool) map[int]int {
	pairs := make(map[int]int)
	used := make(map[int]bool)
	var accepted []span

	fits := func(candidate span) bool {
		for _, s := range accepted {
			if s.crosses(candidate) {
				return false
			}
		}
		return true
	}

	for _, name := range order {
		for i := 0; i < len(tokens); i++ {
			tok := tokens[i]
			if tok.Kind != TokenConditionOpen || tok.Name != name || used[i] {
				continue
			}
			j := nextClose(tokens, i, name, used)
			if j < 0 {
				break
			}
			candidate := span{open: i, close: j}
			if !fits(candidate) {
				continue
			}
			pairs[i], used[i], used[j] = j, true, true
			accepted = append(accepted, candidate)
			i = j
		}
	}

	var stack []int
	var loops []span
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenLoopOpen:
			stack = append(stack, i)
		case TokenLoopClose:
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			loops = append(loops, span{open: open, close: i})
		}
	}
	sort.Slice(loops, func(a, b int) bool { return loops[a].open < loops[b].open })
	for _, candidate := range loops {
		if !loopAllowed(tokens[candidate.open].Name) || !fits(candidate) {
			continue
		}
		pairs[candidate.open] = candidate.close
		accepted = append(accepted, candidate)
	}
	return pairs
}

func nextClose(tokens []Token, from int, name string, used map[int]bool) int {
	for j := from + 1; j < len(tokens); j++ {
		tok := tokens[j]
		if tok.Kind == TokenConditionClose && tok.Name == name && !used[j] {
			return j
		}
	}
	return -1
}

type builder struct {
	src    string
	tokens []Token
	prog   *Program
	pairs  map[int]int
}

func (b *builder) spanRaw(open, close int) string {
	end := b.tokens[close].Pos + len(b.tokens[close].Raw)
	return b.src[b.tokens[open].Pos:end]
}

// build converts tokens[lo:hi] into nodes. When allowElse is set the first
// top-level else token splits the output into primary and secondary lists.
func (b *builder) build(lo, hi int, allowElse bool) (primary, secondary []node, split bool) {
	cur := &primary
	for i := lo; i < hi; i++ {
		tok := b.tokens[i]
		switch tok.Kind {
		case TokenConditionOpen:
			if j, ok := b.pairs[i]; ok {
				then, other, inline := b.build(i+1, j, true)
				*cur = append(*cur, &conditionBlock{
					name:       tok.Name,
					raw:        b.spanRaw(i, j),
					then:       then,
					otherwise:  other,
					inlineElse: inline,
				})
				i = j
				continue
			}
			if _, known := b.prog.conds[tok.Name]; known {
				*cur = append(*cur, &conditionMarker{name: tok.Name, raw: tok.Raw})
				continue
			}
		case TokenLoopOpen:
			if j, ok := b.pairs[i]; ok {
				body, empty, hasElse := b.build(i+1, j, true)
				*cur = append(*cur, &loopBlock{
					name:    tok.Name,
					raw:     b.spanRaw(i, j),
					body:    body,
					empty:   empty,
					hasElse: hasElse,
				})
				i = j
				continue
			}
		case TokenElse:
			if allowElse && !split {
				split = true
				cur = &secondary
				continue
			}
		case TokenVariable:
			*cur = append(*cur, &variableNode{name: tok.Name, raw: tok.Raw})
			continue
		case TokenLink:
			*cur = append(*cur, b.linkNode(tok))
			continue
		}
		*cur = append(*cur, &textNode{raw: tok.Raw})
	}
	return primary, secondary, split
}

// linkNode compiles attribute values so placeholders inside them resolve like
// body placeholders. Only variable references are honoured there.
func (b *builder) linkNode(tok Token) *linkNode {
	n := &linkNode{tag: tok.Tag, raw: tok.Raw, attrs: make([][]node, len(tok.Tag.Attrs))}
	for i, attr := range tok.Tag.Attrs {
		if !attr.HasValue || !strings.Contains(attr.Value, "{{") {
			continue
		}
		var nodes []node
		for _, t := range Scan(attr.Value) {
			if t.Kind == TokenVariable {
				nodes = append(nodes, &variableNode{name: t.Name, raw: t.Raw})
				continue
			}
			nodes = append(nodes, &textNode{raw: t.Raw})
		}
		n.attrs[i] = nodes
	}
	return n
}
