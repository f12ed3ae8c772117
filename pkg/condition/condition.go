// Package condition evaluates declared conditions against runtime values.
//
// Clauses compare a variable against an operand. Numeric operators (>, <, >=,
// <=) coerce both sides to numbers and yield false when either side is not
// numeric. Equality operators compare canonical string forms. contains and
// notContains test substring membership on the stringified variable value.
//
// An operand with valueType "condition" names another condition and resolves
// to that condition's evaluated boolean ("true" or "false"), which introduces a
// dependency between the two conditions. A clause variable that is not
// present in the runtime values but names a condition resolves the same way.
// Dependency cycles are reported as *CycleError.
package condition

import "github.com/goliatone/go-mailtmpl/pkg/model"

// Evaluator computes a boolean per declared condition.
type Evaluator interface {
	EvaluateAll(conditions []model.ConditionDefinition, values model.Values) (map[string]bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(conditions []model.ConditionDefinition, values model.Values) (map[string]bool, error)

// EvaluateAll delegates to the underlying function.
func (fn EvaluatorFunc) EvaluateAll(conditions []model.ConditionDefinition, values model.Values) (map[string]bool, error) {
	return fn(conditions, values)
}

// Default is the built-in Evaluator.
var Default Evaluator = EvaluatorFunc(EvaluateValues)
