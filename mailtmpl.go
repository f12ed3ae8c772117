// Package mailtmpl renders email templates: HTML-like bodies carrying variable
// placeholders, named conditional regions and id-tagged links, resolved
// against declared variables, conditions and runtime values.
//
// Render is the pure entry point. NewEngine adds caching, logging, decorators
// and validation for long-lived callers.
package mailtmpl

import (
	"context"
	"sync"

	"github.com/goliatone/go-mailtmpl/pkg/condition"
	"github.com/goliatone/go-mailtmpl/pkg/format"
	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/orchestrator"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
	"github.com/goliatone/go-mailtmpl/pkg/report"
	"github.com/goliatone/go-mailtmpl/pkg/templatefile"
)

// Template aliases the persisted template document.
type Template = model.EmailTemplate

// Variable aliases a declared placeholder.
type Variable = model.Variable

// Condition aliases a named boolean rule.
type Condition = model.ConditionDefinition

// Clause aliases one comparison of a condition.
type Clause = model.ConditionClause

// Hyperlink aliases an inline link record.
type Hyperlink = model.Hyperlink

// CTAButton aliases a call-to-action button record.
type CTAButton = model.CTAButton

// Result aliases the engine render result.
type Result = orchestrator.Result

// NewEngine exposes the engine constructor from the top-level module.
func NewEngine(options ...orchestrator.Option) *orchestrator.Engine {
	return orchestrator.New(options...)
}

// Render resolves body against the given declarations and values. The only
// error is a dependency cycle between conditions.
func Render(body string, vars []Variable, conds []Condition, links []Hyperlink, ctas []CTAButton, values map[string]any) (string, error) {
	resolved := model.NewValues(values)
	results, err := condition.EvaluateValues(conds, resolved)
	if err != nil {
		return "", err
	}
	defs := placeholder.Definitions{
		Variables:  vars,
		Conditions: conds,
		Hyperlinks: links,
		CTAButtons: ctas,
	}
	return placeholder.Render(body, defs, results, resolved), nil
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *orchestrator.Engine
)

// RenderTemplate renders tpl with a shared default engine, falling back to the
// template's preview data for values that are not supplied.
func RenderTemplate(ctx context.Context, tpl Template, values map[string]any) (Result, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine = orchestrator.New()
	})
	return defaultEngine.Render(ctx, orchestrator.Request{
		Template:       tpl,
		Values:         values,
		UsePreviewData: true,
	})
}

// Format formats raw with the named built-in formatter.
func Format(raw any, kind model.FormatterKind) string {
	return format.Format(raw, kind)
}

// EvaluateAll evaluates every condition against values.
func EvaluateAll(conds []Condition, values map[string]any) (map[string]bool, error) {
	return condition.EvaluateAll(conds, values)
}

// Negate returns the logical complement of clause.
func Negate(clause Clause) Clause {
	return report.Negate(clause)
}

// NegateCondition returns the De Morgan negation of cond.
func NegateCondition(cond Condition) Condition {
	return report.NegateCondition(cond)
}

// Describe renders the rule of cond as text.
func Describe(cond Condition) string {
	return report.Describe(cond)
}

// DescribeElse renders the implicit else rule of cond as text.
func DescribeElse(cond Condition) string {
	return report.DescribeElse(cond)
}

// BuildReport projects tpl into a requirements report.
func BuildReport(tpl Template) report.Report {
	return report.Build(tpl)
}

// RenderReport renders the report of tpl as Markdown or HTML.
func RenderReport(ctx context.Context, tpl Template, f report.Format) (string, error) {
	return report.Render(ctx, report.Build(tpl), f)
}

// LoadTemplates reads a template file or a directory of template files.
func LoadTemplates(path string) (*templatefile.Store, error) {
	return templatefile.Load(path)
}
