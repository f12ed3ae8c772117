package placeholder

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

var reservedNames = map[string]struct{}{
	"this":   {},
	"@index": {},
}

// ExtractVariables returns the distinct root names referenced by variable and
// repeat markers, in order of first appearance. Dotted references contribute
// their first segment.
func ExtractVariables(body string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, tok := range Scan(body) {
		if tok.Kind != TokenVariable && tok.Kind != TokenLoopOpen {
			continue
		}
		if tok.Name == "this" || strings.HasPrefix(tok.Name, "this.") {
			continue
		}
		root := strings.SplitN(tok.Name, ".", 2)[0]
		if _, reserved := reservedNames[root]; reserved {
			continue
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		names = append(names, root)
	}
	return names
}

// ExtractConditions returns the distinct condition names used by opening or
// self-closing markers, in order of first appearance.
func ExtractConditions(body string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, tok := range Scan(body) {
		if tok.Kind != TokenConditionOpen {
			continue
		}
		if _, dup := seen[tok.Name]; dup {
			continue
		}
		seen[tok.Name] = struct{}{}
		names = append(names, tok.Name)
	}
	return names
}

// Leftovers returns every marker still present in rendered output. A non-empty
// result means something in the template did not resolve.
func Leftovers(output string) []string {
	var out []string
	for _, tok := range Scan(output) {
		switch tok.Kind {
		case TokenText, TokenLink:
			continue
		}
		out = append(out, tok.Raw)
	}
	return out
}

// DeclareDetected returns a decorator that declares every variable referenced
// by the body but missing from the template as a string variable without a
// formatter. Names already used by conditions are skipped.
func DeclareDetected() model.Decorator {
	return model.DecoratorFunc(func(tpl *model.EmailTemplate) error {
		if tpl == nil {
			return nil
		}
		for _, name := range ExtractVariables(tpl.Body()) {
			if _, declared := tpl.Variable(name); declared {
				continue
			}
			if _, isCondition := tpl.Condition(name); isCondition {
				continue
			}
			tpl.Variables = append(tpl.Variables, model.Variable{
				ID:        uuid.NewString(),
				Name:      name,
				Type:      model.VariableTypeString,
				Formatter: model.FormatterNone,
			})
		}
		return nil
	})
}
