package condition

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

func clause(variable string, op model.Operator, value string) model.ConditionClause {
	return model.ConditionClause{Variable: variable, Operator: op, Value: value, ValueType: model.ValueLiteral}
}

func TestEvaluateAllNumericComparison(t *testing.T) {
	t.Parallel()

	adult := []model.ConditionDefinition{{
		Name:    "adult",
		Clauses: []model.ConditionClause{clause("age", model.OpGreater, "18")},
	}}

	cases := []struct {
		age  any
		want bool
	}{
		{20, true},
		{10, false},
		{"eighteen", false},
		{"19", true},
		{nil, false},
	}
	for _, tc := range cases {
		got, err := EvaluateAll(adult, map[string]any{"age": tc.age})
		if err != nil {
			t.Fatalf("EvaluateAll(age=%v) returned error: %v", tc.age, err)
		}
		if got["adult"] != tc.want {
			t.Fatalf("age=%v: got %v, want %v", tc.age, got["adult"], tc.want)
		}
	}
}

func TestEvaluateAllLogicOperators(t *testing.T) {
	t.Parallel()

	clauses := []model.ConditionClause{
		clause("a", model.OpEqual, "1"),
		clause("b", model.OpEqual, "1"),
	}
	conds := []model.ConditionDefinition{
		{Name: "both", Clauses: clauses, LogicOperator: model.LogicAnd},
		{Name: "either", Clauses: clauses, LogicOperator: model.LogicOr},
		{Name: "none", LogicOperator: model.LogicOr},
	}

	truth := []struct {
		a, b         int
		both, either bool
	}{
		{1, 1, true, true},
		{1, 0, false, true},
		{0, 1, false, true},
		{0, 0, false, false},
	}
	for _, row := range truth {
		got, err := EvaluateAll(conds, map[string]any{"a": row.a, "b": row.b})
		if err != nil {
			t.Fatalf("EvaluateAll returned error: %v", err)
		}
		want := map[string]bool{"both": row.both, "either": row.either, "none": false}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("a=%d b=%d mismatch (-want +got):\n%s", row.a, row.b, diff)
		}
	}
}

func TestEvaluateAllStringOperators(t *testing.T) {
	t.Parallel()

	conds := []model.ConditionDefinition{
		{Name: "eq", Clauses: []model.ConditionClause{clause("vip", model.OpEqual, "true")}},
		{Name: "neq", Clauses: []model.ConditionClause{clause("plan", model.OpNotEqual, "free")}},
		{Name: "has", Clauses: []model.ConditionClause{clause("email", model.OpContains, "@acme")}},
		{Name: "lacks", Clauses: []model.ConditionClause{clause("email", model.OpNotContains, "@acme")}},
		{Name: "num-eq", Clauses: []model.ConditionClause{clause("count", model.OpEqual, "3")}},
		{Name: "bad-op", Clauses: []model.ConditionClause{clause("count", "~", "3")}},
	}
	got, err := EvaluateAll(conds, map[string]any{
		"vip":   true,
		"plan":  "pro",
		"email": "ann@acme.io",
		"count": 3,
	})
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	want := map[string]bool{
		"eq": true, "neq": true, "has": true, "lacks": false, "num-eq": true, "bad-op": false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateAllVariableOperand(t *testing.T) {
	t.Parallel()

	conds := []model.ConditionDefinition{{
		Name: "overBudget",
		Clauses: []model.ConditionClause{{
			Variable: "spent", Operator: model.OpGreaterOrEqual, Value: "budget", ValueType: model.ValueVariable,
		}},
	}}
	got, err := EvaluateAll(conds, map[string]any{"spent": 120, "budget": "100"})
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	if !got["overBudget"] {
		t.Fatalf("expected overBudget true")
	}

	got, err = EvaluateAll(conds, map[string]any{"spent": 120})
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	if got["overBudget"] {
		t.Fatalf("missing operand must compare false")
	}
}

func TestEvaluateAllConditionOperandUsesResult(t *testing.T) {
	t.Parallel()

	conds := []model.ConditionDefinition{
		{
			Name: "vipAdult",
			Clauses: []model.ConditionClause{
				{Variable: "adult", Operator: model.OpEqual, Value: "true", ValueType: model.ValueLiteral},
				{Variable: "vip", Operator: model.OpEqual, Value: "isVip", ValueType: model.ValueCondition},
			},
		},
		{Name: "adult", Clauses: []model.ConditionClause{clause("age", model.OpGreaterOrEqual, "18")}},
		{Name: "isVip", Clauses: []model.ConditionClause{clause("tier", model.OpEqual, "gold")}},
	}

	got, err := EvaluateAll(conds, map[string]any{"age": 30, "tier": "gold", "vip": true})
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	if !got["vipAdult"] {
		t.Fatalf("expected vipAdult true, got %#v", got)
	}

	got, err = EvaluateAll(conds, map[string]any{"age": 30, "tier": "silver", "vip": true})
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	if got["vipAdult"] {
		t.Fatalf("vip=true must not match isVip=false")
	}
}

func TestEvaluateAllOrderIndependent(t *testing.T) {
	t.Parallel()

	a := model.ConditionDefinition{Name: "a", Clauses: []model.ConditionClause{{Variable: "b", Operator: model.OpEqual, Value: "true"}}}
	b := model.ConditionDefinition{Name: "b", Clauses: []model.ConditionClause{clause("x", model.OpEqual, "1")}}
	values := map[string]any{"x": 1}

	first, err := EvaluateAll([]model.ConditionDefinition{a, b}, values)
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	second, err := EvaluateAll([]model.ConditionDefinition{b, a}, values)
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("declaration order changed results (-first +second):\n%s", diff)
	}
	if !first["a"] {
		t.Fatalf("expected a to follow b")
	}
}

func TestEvaluateAllDetectsCycles(t *testing.T) {
	t.Parallel()

	conds := []model.ConditionDefinition{
		{Name: "a", Clauses: []model.ConditionClause{{Variable: "x", Operator: model.OpEqual, Value: "b", ValueType: model.ValueCondition}}},
		{Name: "b", Clauses: []model.ConditionClause{{Variable: "x", Operator: model.OpEqual, Value: "c", ValueType: model.ValueCondition}}},
		{Name: "c", Clauses: []model.ConditionClause{{Variable: "x", Operator: model.OpEqual, Value: "a", ValueType: model.ValueCondition}}},
	}

	_, err := EvaluateAll(conds, map[string]any{"x": "true"})
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "a"}, cycle.Path); diff != "" {
		t.Fatalf("cycle path mismatch (-want +got):\n%s", diff)
	}
}

func TestSetCyclePathAfterEarlierFailure(t *testing.T) {
	t.Parallel()

	refersTo := func(name, target string) model.ConditionDefinition {
		return model.ConditionDefinition{
			Name:    name,
			Clauses: []model.ConditionClause{{Variable: "v", Operator: model.OpEqual, Value: target, ValueType: model.ValueCondition}},
		}
	}
	set := NewSet([]model.ConditionDefinition{
		refersTo("a", "b"),
		refersTo("b", "a"),
		refersTo("other", "b"),
	}, model.NewValues(map[string]any{"v": "true"}))

	pathOf := func(name string) []string {
		t.Helper()
		_, err := set.Eval(name)
		var cycle *CycleError
		if !errors.As(err, &cycle) {
			t.Fatalf("Eval(%q): expected *CycleError, got %v", name, err)
		}
		return cycle.Path
	}

	if diff := cmp.Diff([]string{"a", "b", "a"}, pathOf("a")); diff != "" {
		t.Fatalf("first path mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "a", "b"}, pathOf("other")); diff != "" {
		t.Fatalf("path names a condition outside the cycle (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "a"}, pathOf("a")); diff != "" {
		t.Fatalf("repeated path mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateAllSelfReferenceIsCycle(t *testing.T) {
	t.Parallel()

	conds := []model.ConditionDefinition{
		{Name: "loop", Clauses: []model.ConditionClause{{Variable: "loop", Operator: model.OpEqual, Value: "true"}}},
	}
	if _, err := EvaluateAll(conds, nil); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}

	// A runtime value shadows the condition name, so there is no dependency.
	got, err := EvaluateAll(conds, map[string]any{"loop": "true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got["loop"] {
		t.Fatalf("expected loop true from runtime value")
	}
}

func TestEvaluateAllDuplicateNamesFirstWins(t *testing.T) {
	t.Parallel()

	conds := []model.ConditionDefinition{
		{Name: "dup", Clauses: []model.ConditionClause{clause("x", model.OpEqual, "1")}},
		{Name: "dup", Clauses: []model.ConditionClause{clause("x", model.OpEqual, "2")}},
	}
	got, err := EvaluateAll(conds, map[string]any{"x": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got["dup"] {
		t.Fatalf("expected first declaration to win")
	}
}

func TestCompareUndefinedVariable(t *testing.T) {
	t.Parallel()

	if Compare(model.OpEqual, model.Null(), model.StringValue("x")) {
		t.Fatalf("null must not equal a non-empty literal")
	}
	if Compare(model.OpGreater, model.Null(), model.StringValue("0")) {
		t.Fatalf("null is not numeric")
	}
	if Compare(model.OpContains, model.Null(), model.StringValue("x")) {
		t.Fatalf("null contains nothing")
	}
}
