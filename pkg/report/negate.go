package report

import "github.com/goliatone/go-mailtmpl/pkg/model"

var complements = map[model.Operator]model.Operator{
	model.OpEqual:          model.OpNotEqual,
	model.OpNotEqual:       model.OpEqual,
	model.OpGreater:        model.OpLessOrEqual,
	model.OpLessOrEqual:    model.OpGreater,
	model.OpLess:           model.OpGreaterOrEqual,
	model.OpGreaterOrEqual: model.OpLess,
	model.OpContains:       model.OpNotContains,
	model.OpNotContains:    model.OpContains,
}

// Negate returns clause with its operator replaced by the logical complement.
// Unknown operators are left unchanged. Negate(Negate(c)) == c.
func Negate(clause model.ConditionClause) model.ConditionClause {
	if op, ok := complements[clause.Operator]; ok {
		clause.Operator = op
	}
	return clause
}

// NegateCondition applies De Morgan's law: every clause is negated and the
// logic operator flips between AND and OR. The input is not modified.
func NegateCondition(cond model.ConditionDefinition) model.ConditionDefinition {
	out := cond
	out.Clauses = make([]model.ConditionClause, len(cond.Clauses))
	for i, clause := range cond.Clauses {
		out.Clauses[i] = Negate(clause)
	}
	if cond.Logic() == model.LogicAnd {
		out.LogicOperator = model.LogicOr
	} else {
		out.LogicOperator = model.LogicAnd
	}
	return out
}
