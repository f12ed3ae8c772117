package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errVariableNameMissing  = errors.New("model: variable name is required")
	errConditionNameMissing = errors.New("model: condition name is required")
)

// Validate reports structural problems that make a template ambiguous: empty
// or duplicate names and enumerations outside the supported sets. Rendering
// never requires a valid template; callers opt in to strictness.
func (t EmailTemplate) Validate() error {
	var errs []error

	seenVars := make(map[string]struct{}, len(t.Variables))
	for i, v := range t.Variables {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("variables[%d]: %w", i, errVariableNameMissing))
			continue
		}
		if _, dup := seenVars[name]; dup {
			errs = append(errs, fmt.Errorf("model: duplicate variable %q", name))
		}
		seenVars[name] = struct{}{}
		if !v.Type.Valid() {
			errs = append(errs, fmt.Errorf("model: variable %q has unsupported type %q", name, v.Type))
		}
	}

	seenConds := make(map[string]struct{}, len(t.Conditions))
	for i, c := range t.Conditions {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("conditions[%d]: %w", i, errConditionNameMissing))
			continue
		}
		if _, dup := seenConds[name]; dup {
			errs = append(errs, fmt.Errorf("model: duplicate condition %q", name))
		}
		seenConds[name] = struct{}{}
		if !c.LogicOperator.Valid() {
			errs = append(errs, fmt.Errorf("model: condition %q has unsupported logic operator %q", name, c.LogicOperator))
		}
		for j, clause := range c.Clauses {
			if strings.TrimSpace(clause.Variable) == "" {
				errs = append(errs, fmt.Errorf("model: condition %q clause %d has no variable", name, j))
			}
			if !clause.Operator.Valid() {
				errs = append(errs, fmt.Errorf("model: condition %q clause %d has unsupported operator %q", name, j, clause.Operator))
			}
			if !clause.ValueType.Valid() {
				errs = append(errs, fmt.Errorf("model: condition %q clause %d has unsupported value type %q", name, j, clause.ValueType))
			}
		}
	}

	return errors.Join(errs...)
}

// Lint returns advisory warnings: references that do not resolve, conditions
// that can never be true, unknown formatters and link records whose ids are
// missing from the body. Warnings never block rendering.
func (t EmailTemplate) Lint() []string {
	var warnings []string

	known := make(map[string]struct{}, len(t.Variables)+len(t.Conditions))
	for _, v := range t.Variables {
		known[v.Name] = struct{}{}
		if v.Formatter != "" && !isBuiltinFormatter(v.Formatter) {
			warnings = append(warnings, fmt.Sprintf("variable %q uses unknown formatter %q", v.Name, v.Formatter))
		}
	}
	conds := make(map[string]struct{}, len(t.Conditions))
	for _, c := range t.Conditions {
		conds[c.Name] = struct{}{}
		known[c.Name] = struct{}{}
	}

	for _, c := range t.Conditions {
		if len(c.Clauses) == 0 {
			warnings = append(warnings, fmt.Sprintf("condition %q has no clauses and always evaluates to false", c.Name))
		}
		for _, clause := range c.Clauses {
			if _, ok := known[clause.Variable]; !ok {
				warnings = append(warnings, fmt.Sprintf("condition %q references undeclared variable %q", c.Name, clause.Variable))
			}
			switch clause.ValueType {
			case ValueVariable:
				if _, ok := known[clause.Value]; !ok {
					warnings = append(warnings, fmt.Sprintf("condition %q compares against undeclared variable %q", c.Name, clause.Value))
				}
			case ValueCondition:
				if _, ok := conds[clause.Value]; !ok {
					warnings = append(warnings, fmt.Sprintf("condition %q compares against unknown condition %q", c.Name, clause.Value))
				}
			}
		}
	}

	body := t.Body()
	for _, link := range t.Hyperlinks {
		if !strings.Contains(body, `data-hyperlink-id="`+link.ID+`"`) {
			warnings = append(warnings, fmt.Sprintf("hyperlink %q is not referenced by the body", link.ID))
		}
	}
	for _, button := range t.CTAButtons {
		if !strings.Contains(body, `data-cta-id="`+button.ID+`"`) {
			warnings = append(warnings, fmt.Sprintf("cta button %q is not referenced by the body", button.ID))
		}
	}

	return warnings
}

func isBuiltinFormatter(kind FormatterKind) bool {
	for _, k := range FormatterKinds() {
		if k == kind {
			return true
		}
	}
	return false
}
