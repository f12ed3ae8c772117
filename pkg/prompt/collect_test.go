package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	textAreas    []string
	infoMessages []string
	defaults     []string
	inputPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func sampleTemplate() model.EmailTemplate {
	return model.EmailTemplate{
		Variables: []model.Variable{
			{Name: "name", Type: model.VariableTypeString},
			{Name: "total", Type: model.VariableTypeNumber, Formatter: model.FormatterCurrency},
			{Name: "vip", Type: model.VariableTypeBoolean},
			{Name: "items", Type: model.VariableTypeArray},
		},
		Conditions: []model.ConditionDefinition{
			{Name: "isVip", Clauses: []model.ConditionClause{{Variable: "vip", Operator: model.OpEqual, Value: "true"}}},
			{Name: "big", Clauses: []model.ConditionClause{
				{Variable: "tier", Operator: model.OpEqual, Value: "limit", ValueType: model.ValueVariable},
				{Variable: "isVip", Operator: model.OpEqual, Value: "true"},
			}},
		},
		PreviewData: map[string]any{"name": "Ann"},
	}
}

func TestMissing(t *testing.T) {
	t.Parallel()

	got := Missing(sampleTemplate(), map[string]any{"total": 3})
	want := []string{"name", "vip", "items", "tier", "limit"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_PromptsByType(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"Bea", "gold", "silver"},
		confirm:   []bool{true},
		textAreas: []string{"not json", `[{"sku":"A"}]`},
	}
	got, err := NewCollector(driver).Collect(context.Background(), sampleTemplate(), map[string]any{"total": 3})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]any{
		"total": 3,
		"name":  "Bea",
		"vip":   true,
		"items": []any{map[string]any{"sku": "A"}},
		"tier":  "gold",
		"limit": "silver",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected one retry message, got %v", driver.infoMessages)
	}
	if driver.defaults[0] != "Ann" {
		t.Fatalf("expected preview default, got %q", driver.defaults[0])
	}
}

func TestCollect_NumberRetries(t *testing.T) {
	t.Parallel()

	tpl := model.EmailTemplate{Variables: []model.Variable{{Name: "total", Type: model.VariableTypeNumber}}}
	driver := &stubDriver{inputs: []string{"abc", " 12.5 "}}
	got, err := NewCollector(driver).Collect(context.Background(), tpl, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got["total"] != 12.5 {
		t.Fatalf("expected 12.5, got %#v", got["total"])
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected one retry message, got %v", driver.infoMessages)
	}
}

func TestCollect_PropagatesDriverError(t *testing.T) {
	t.Parallel()

	tpl := model.EmailTemplate{Variables: []model.Variable{{Name: "name"}}}
	if _, err := NewCollector(&stubDriver{}).Collect(context.Background(), tpl, nil); err == nil {
		t.Fatalf("expected driver error")
	}
}
