package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-mailtmpl/internal/cache"
	"github.com/goliatone/go-mailtmpl/pkg/condition"
	"github.com/goliatone/go-mailtmpl/pkg/format"
	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
)

// DefaultCacheSize is the number of compiled bodies kept by default.
const DefaultCacheSize = 128

// Option customises the engine configuration.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCacheSize bounds the compiled program cache. Zero or a negative size
// disables caching.
func WithCacheSize(size int) Option {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// WithEvaluator replaces the condition evaluator.
func WithEvaluator(evaluator condition.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithFormatter replaces the value formatter, typically with a
// *format.Registry carrying custom formatters.
func WithFormatter(formatter placeholder.Formatter) Option {
	return func(e *Engine) {
		e.formatter = formatter
	}
}

// WithOutputPolicy sanitises rendered output with policy.
func WithOutputPolicy(policy *bluemonday.Policy) Option {
	return func(e *Engine) {
		e.policy = policy
	}
}

// WithStrictValidation makes Render reject templates that fail
// model.EmailTemplate.Validate.
func WithStrictValidation() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// WithDecorators registers decorators that run against a copy of each
// template before it is validated and rendered.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(e *Engine) {
		if len(decorators) == 0 {
			return
		}
		e.decorators = append(e.decorators, decorators...)
	}
}

// WithTransformer registers a Transformer that runs before decorators.
func WithTransformer(t Transformer) Option {
	return func(e *Engine) {
		e.transformer = t
	}
}

// Engine renders email templates. It is safe for concurrent use.
type Engine struct {
	logger      *zap.Logger
	evaluator   condition.Evaluator
	formatter   placeholder.Formatter
	policy      *bluemonday.Policy
	strict      bool
	decorators  []model.Decorator
	transformer Transformer
	cacheSize   int
	programs    *cache.Cache[*placeholder.Program]
}

// New constructs an Engine applying any provided options. Missing
// dependencies fall back to the built-in implementations.
func New(options ...Option) *Engine {
	e := &Engine{cacheSize: DefaultCacheSize}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.evaluator == nil {
		e.evaluator = condition.Default
	}
	if e.formatter == nil {
		e.formatter = format.Default()
	}
	if e.cacheSize > 0 {
		e.programs = cache.New[*placeholder.Program](e.cacheSize)
	}
	return e
}

// Request describes one render.
type Request struct {
	Template model.EmailTemplate

	// Values holds runtime values keyed by variable name.
	Values map[string]any

	// UsePreviewData fills values missing from Values with the template's
	// preview data.
	UsePreviewData bool
}

// Result is the outcome of a render.
type Result struct {
	Output string
	// Conditions holds the evaluated result of every declared condition.
	Conditions map[string]bool
	// Leftovers lists marker syntax still present in Output. Non-empty means
	// part of the template did not resolve.
	Leftovers []string
}

// Render executes the transform → decorate → validate → evaluate → compile →
// execute sequence. The only errors are context cancellation, transformer or
// decorator failures, strict validation failures and condition cycles.
func (e *Engine) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tpl := cloneTemplate(req.Template)
	if err := e.applyTransformer(ctx, &tpl); err != nil {
		return Result{}, err
	}
	if err := e.applyDecorators(&tpl); err != nil {
		return Result{}, err
	}
	if e.strict {
		if err := tpl.Validate(); err != nil {
			return Result{}, fmt.Errorf("orchestrator: invalid template %q: %w", tpl.ID, err)
		}
	}
	for _, warning := range tpl.Lint() {
		e.logger.Warn("template lint", zap.String("template", tpl.ID), zap.String("warning", warning))
	}

	values := model.NewValues(mergeValues(tpl.PreviewData, req.Values, req.UsePreviewData))
	results, err := e.evaluator.EvaluateAll(tpl.Conditions, values)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: evaluate conditions: %w", err)
	}

	program := e.program(tpl)
	output := program.Execute(results, values, e.formatter)
	if e.policy != nil {
		output = e.policy.Sanitize(output)
	}

	leftovers := placeholder.Leftovers(output)
	if len(leftovers) > 0 {
		e.logger.Warn("unresolved markers in output",
			zap.String("template", tpl.ID),
			zap.Strings("markers", leftovers),
		)
	}

	return Result{Output: output, Conditions: results, Leftovers: leftovers}, nil
}

// CacheStats reports compiled program cache usage. It is zero when caching is
// disabled.
func (e *Engine) CacheStats() cache.Stats {
	if e.programs == nil {
		return cache.Stats{}
	}
	return e.programs.Stats()
}

func (e *Engine) program(tpl model.EmailTemplate) *placeholder.Program {
	body := tpl.Body()
	defs := placeholder.DefinitionsOf(tpl)
	if e.programs == nil {
		return placeholder.Compile(body, defs)
	}

	key := programKey(body, defs)
	program, hit, _ := e.programs.GetOrCompute(key, func() (*placeholder.Program, error) {
		return placeholder.Compile(body, defs), nil
	})
	e.logger.Debug("program cache",
		zap.String("template", tpl.ID),
		zap.Bool("hit", hit),
		zap.Uint64("key", key),
	)
	return program
}

func (e *Engine) applyTransformer(ctx context.Context, tpl *model.EmailTemplate) error {
	if e.transformer == nil {
		return nil
	}
	if err := e.transformer.Transform(ctx, tpl); err != nil {
		return fmt.Errorf("orchestrator: transform template: %w", err)
	}
	return nil
}

func (e *Engine) applyDecorators(tpl *model.EmailTemplate) error {
	for _, decorator := range e.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(tpl); err != nil {
			return fmt.Errorf("orchestrator: decorate template: %w", err)
		}
	}
	return nil
}

func mergeValues(preview, values map[string]any, usePreview bool) map[string]any {
	if !usePreview || len(preview) == 0 {
		return values
	}
	merged := make(map[string]any, len(preview)+len(values))
	for key, value := range preview {
		merged[key] = value
	}
	for key, value := range values {
		merged[key] = value
	}
	return merged
}

// cloneTemplate copies the declaration slices so decorators and transformers
// never write through to the caller's template.
func cloneTemplate(tpl model.EmailTemplate) model.EmailTemplate {
	out := tpl
	out.Variables = append([]model.Variable(nil), tpl.Variables...)
	out.Conditions = make([]model.ConditionDefinition, len(tpl.Conditions))
	for i, c := range tpl.Conditions {
		c.Clauses = append([]model.ConditionClause(nil), c.Clauses...)
		out.Conditions[i] = c
	}
	out.Hyperlinks = append([]model.Hyperlink(nil), tpl.Hyperlinks...)
	out.CTAButtons = append([]model.CTAButton(nil), tpl.CTAButtons...)
	if tpl.PreviewData != nil {
		out.PreviewData = make(map[string]any, len(tpl.PreviewData))
		for key, value := range tpl.PreviewData {
			out.PreviewData[key] = value
		}
	}
	return out
}
