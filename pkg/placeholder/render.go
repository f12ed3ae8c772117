package placeholder

import (
	"github.com/goliatone/go-mailtmpl/pkg/format"
	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Render compiles body and executes it in one call. results must come from
// evaluating defs.Conditions against values.
func Render(body string, defs Definitions, results map[string]bool, values model.Values) string {
	return Compile(body, defs).Execute(results, values, format.Default())
}
