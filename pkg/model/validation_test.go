package model

import (
	"strings"
	"testing"
)

func TestValidateReportsDuplicatesAndEnums(t *testing.T) {
	t.Parallel()

	tpl := EmailTemplate{
		Variables: []Variable{
			{Name: "name", Type: VariableTypeString},
			{Name: "name", Type: "weird"},
			{Name: " "},
		},
		Conditions: []ConditionDefinition{
			{Name: "vip", LogicOperator: "XOR", Clauses: []ConditionClause{{Variable: "vip", Operator: "~="}}},
			{Name: "vip"},
		},
	}

	err := tpl.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		`duplicate variable "name"`,
		`unsupported type "weird"`,
		"variable name is required",
		`unsupported logic operator "XOR"`,
		`unsupported operator "~="`,
		`duplicate condition "vip"`,
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in error:\n%s", want, msg)
		}
	}
}

func TestValidateAcceptsZeroValueEnums(t *testing.T) {
	t.Parallel()

	tpl := EmailTemplate{
		Variables:  []Variable{{Name: "name"}},
		Conditions: []ConditionDefinition{{Name: "c", Clauses: []ConditionClause{{Variable: "name", Operator: OpEqual}}}},
	}
	if err := tpl.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLintWarnsOnDanglingReferences(t *testing.T) {
	t.Parallel()

	tpl := EmailTemplate{
		TemplateHTML: `<a data-hyperlink-id="l1">x</a>`,
		Variables:    []Variable{{Name: "age", Formatter: "roman"}},
		Conditions: []ConditionDefinition{
			{Name: "empty"},
			{Name: "adult", Clauses: []ConditionClause{
				{Variable: "agee", Operator: OpGreater, Value: "18"},
				{Variable: "age", Operator: OpEqual, Value: "other", ValueType: ValueCondition},
			}},
		},
		Hyperlinks: []Hyperlink{{ID: "l1"}, {ID: "l2"}},
		CTAButtons: []CTAButton{{ID: "c1"}},
	}

	warnings := strings.Join(tpl.Lint(), "\n")
	for _, want := range []string{
		`unknown formatter "roman"`,
		`"empty" has no clauses`,
		`undeclared variable "agee"`,
		`unknown condition "other"`,
		`hyperlink "l2"`,
		`cta button "c1"`,
	} {
		if !strings.Contains(warnings, want) {
			t.Fatalf("expected %q in warnings:\n%s", want, warnings)
		}
	}
	if strings.Contains(warnings, `hyperlink "l1"`) {
		t.Fatalf("l1 is referenced by the body:\n%s", warnings)
	}
}
