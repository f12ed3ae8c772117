// Package prompt asks the user for template values that were not supplied.
package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Collector prompts for missing values through a Driver.
type Collector struct {
	driver Driver
}

// NewCollector builds a Collector. A nil driver selects the survey driver.
func NewCollector(driver Driver) *Collector {
	if driver == nil {
		driver = SurveyDriver()
	}
	return &Collector{driver: driver}
}

// Missing returns the names a render of tpl reads that values does not hold:
// declared variables first, then clause variables that are not declared.
func Missing(tpl model.EmailTemplate, values map[string]any) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		if _, ok := values[name]; ok {
			return
		}
		out = append(out, name)
	}
	for _, v := range tpl.Variables {
		add(v.Name)
	}
	for _, cond := range tpl.Conditions {
		for _, clause := range cond.Clauses {
			if _, isCondition := tpl.Condition(clause.Variable); isCondition {
				continue
			}
			add(clause.Variable)
			if clause.ValueType == model.ValueVariable {
				add(clause.Value)
			}
		}
	}
	return out
}

// Collect returns a copy of values extended with answers for every missing
// name. Preview data, when present, seeds the prompt defaults.
func (c *Collector) Collect(ctx context.Context, tpl model.EmailTemplate, values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}
	for _, name := range Missing(tpl, values) {
		variable, declared := tpl.Variable(name)
		if !declared {
			variable = model.Variable{Name: name, Type: model.VariableTypeString}
		}
		value, err := c.ask(ctx, variable, tpl.PreviewData[name])
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func (c *Collector) ask(ctx context.Context, variable model.Variable, preview any) (any, error) {
	switch variable.Type {
	case model.VariableTypeBoolean:
		def, _ := model.ValueOf(preview).Bool()
		return c.driver.Confirm(ctx, ConfirmConfig{
			Message: label(variable),
			Default: def,
			Help:    variable.Description,
		})
	case model.VariableTypeNumber:
		return c.askNumber(ctx, variable, preview)
	case model.VariableTypeArray, model.VariableTypeObject:
		return c.askJSON(ctx, variable, preview)
	default:
		return c.driver.Input(ctx, InputConfig{
			Message: label(variable),
			Default: defaultString(preview),
			Help:    variable.Description,
		})
	}
}

func (c *Collector) askNumber(ctx context.Context, variable model.Variable, preview any) (any, error) {
	for {
		input, err := c.driver.Input(ctx, InputConfig{
			Message: label(variable),
			Default: defaultString(preview),
			Help:    variable.Description,
		})
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", variable.Name, err))
			continue
		}
		return f, nil
	}
}

func (c *Collector) askJSON(ctx context.Context, variable model.Variable, preview any) (any, error) {
	def := ""
	if preview != nil {
		if raw, err := json.Marshal(preview); err == nil {
			def = string(raw)
		}
	}
	for {
		input, err := c.driver.TextArea(ctx, TextAreaConfig{
			Message: label(variable) + " (JSON)",
			Default: def,
			Help:    variable.Description,
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(input) == "" {
			return nil, nil
		}
		var parsed any
		if err := json.Unmarshal([]byte(input), &parsed); err != nil {
			_ = c.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", variable.Name, err))
			continue
		}
		return parsed, nil
	}
}

func label(variable model.Variable) string {
	if variable.Formatter != "" && variable.Formatter != model.FormatterNone {
		return fmt.Sprintf("%s (%s)", variable.Name, variable.Formatter)
	}
	return variable.Name
}

func defaultString(preview any) string {
	if preview == nil {
		return ""
	}
	return model.ValueOf(preview).String()
}
