package report

import (
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// DescribeClauses renders clauses as "variable operator value" joined by the
// logic operator.
func DescribeClauses(clauses []model.ConditionClause, logic model.LogicOperator) string {
	if logic != model.LogicOr {
		logic = model.LogicAnd
	}
	parts := make([]string, len(clauses))
	for i, clause := range clauses {
		parts[i] = clause.Variable + " " + string(clause.Operator) + " " + clause.Value
	}
	return strings.Join(parts, " "+string(logic)+" ")
}

// Describe renders the rule of cond.
func Describe(cond model.ConditionDefinition) string {
	return DescribeClauses(cond.Clauses, cond.Logic())
}

// DescribeElse renders the implicit else rule of cond.
func DescribeElse(cond model.ConditionDefinition) string {
	return Describe(NegateCondition(cond))
}
