package condition

import (
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

const (
	unvisited = iota
	visiting
	done
)

// Set evaluates a fixed list of conditions against one set of runtime values.
// Results are memoised, so evaluation order does not affect the outcome. A Set
// is not safe for concurrent use; create one per render.
type Set struct {
	defs    map[string]model.ConditionDefinition
	order   []string
	values  model.Values
	state   map[string]int
	results map[string]bool
	stack   []string
}

// NewSet indexes conditions by name. When names repeat, the first declaration
// wins.
func NewSet(conditions []model.ConditionDefinition, values model.Values) *Set {
	s := &Set{
		defs:    make(map[string]model.ConditionDefinition, len(conditions)),
		order:   make([]string, 0, len(conditions)),
		values:  values,
		state:   make(map[string]int, len(conditions)),
		results: make(map[string]bool, len(conditions)),
	}
	for _, c := range conditions {
		if _, exists := s.defs[c.Name]; exists {
			continue
		}
		s.defs[c.Name] = c
		s.order = append(s.order, c.Name)
	}
	return s
}

// Has reports whether name is a declared condition.
func (s *Set) Has(name string) bool {
	_, ok := s.defs[name]
	return ok
}

// Eval returns the result of the named condition. Unknown names evaluate to
// false without error.
func (s *Set) Eval(name string) (bool, error) {
	def, ok := s.defs[name]
	if !ok {
		return false, nil
	}

	switch s.state[name] {
	case done:
		return s.results[name], nil
	case visiting:
		return false, s.cycleFrom(name)
	}

	s.state[name] = visiting
	s.stack = append(s.stack, name)

	result, err := s.evalDefinition(def)
	s.stack = s.stack[:len(s.stack)-1]
	if err != nil {
		s.state[name] = unvisited
		return false, err
	}

	s.state[name] = done
	s.results[name] = result
	return result, nil
}

// All evaluates every condition in declaration order.
func (s *Set) All() (map[string]bool, error) {
	for _, name := range s.order {
		if _, err := s.Eval(name); err != nil {
			return nil, err
		}
	}
	out := make(map[string]bool, len(s.results))
	for name, result := range s.results {
		out[name] = result
	}
	return out, nil
}

func (s *Set) evalDefinition(def model.ConditionDefinition) (bool, error) {
	if len(def.Clauses) == 0 {
		return false, nil
	}

	results := make([]bool, len(def.Clauses))
	for i, clause := range def.Clauses {
		ok, err := s.EvaluateClause(clause)
		if err != nil {
			return false, err
		}
		results[i] = ok
	}

	if def.Logic() == model.LogicOr {
		for _, ok := range results {
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	for _, ok := range results {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// EvaluateClause resolves both sides of clause and compares them.
func (s *Set) EvaluateClause(clause model.ConditionClause) (bool, error) {
	left, err := s.resolve(clause.Variable)
	if err != nil {
		return false, err
	}

	var right model.Value
	switch clause.ValueType {
	case model.ValueVariable:
		right, err = s.resolve(clause.Value)
	case model.ValueCondition:
		right, err = s.conditionValue(strings.TrimSpace(clause.Value))
	default:
		right = model.StringValue(clause.Value)
	}
	if err != nil {
		return false, err
	}

	return Compare(clause.Operator, left, right), nil
}

// resolve reads name from the runtime values, falling back to a condition of
// the same name. Unknown names resolve to null.
func (s *Set) resolve(name string) (model.Value, error) {
	name = strings.TrimSpace(name)
	if value, ok := s.values.Lookup(name); ok {
		return value, nil
	}
	return s.conditionValue(name)
}

func (s *Set) conditionValue(name string) (model.Value, error) {
	if !s.Has(name) {
		return model.Null(), nil
	}
	result, err := s.Eval(name)
	if err != nil {
		return model.Value{}, err
	}
	return model.BoolValue(result), nil
}

func (s *Set) cycleFrom(name string) error {
	start := 0
	for i, entry := range s.stack {
		if entry == name {
			start = i
			break
		}
	}
	path := append([]string(nil), s.stack[start:]...)
	path = append(path, name)
	return &CycleError{Path: path}
}

// EvaluateAll evaluates every condition against raw runtime values and
// returns the results keyed by condition name.
func EvaluateAll(conditions []model.ConditionDefinition, values map[string]any) (map[string]bool, error) {
	return EvaluateValues(conditions, model.NewValues(values))
}

// EvaluateValues is EvaluateAll for already converted values.
func EvaluateValues(conditions []model.ConditionDefinition, values model.Values) (map[string]bool, error) {
	return NewSet(conditions, values).All()
}
