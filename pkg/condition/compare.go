package condition

import (
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Compare applies op to left and right using operator-scoped coercion.
// Unsupported operators compare false.
func Compare(op model.Operator, left, right model.Value) bool {
	switch op {
	case model.OpEqual:
		return left.String() == right.String()
	case model.OpNotEqual:
		return left.String() != right.String()
	case model.OpContains:
		return strings.Contains(left.String(), right.String())
	case model.OpNotContains:
		return !strings.Contains(left.String(), right.String())
	}

	if !op.Numeric() {
		return false
	}
	l, ok := left.Number()
	if !ok {
		return false
	}
	r, ok := right.Number()
	if !ok {
		return false
	}

	switch op {
	case model.OpGreater:
		return l > r
	case model.OpLess:
		return l < r
	case model.OpGreaterOrEqual:
		return l >= r
	case model.OpLessOrEqual:
		return l <= r
	}
	return false
}
