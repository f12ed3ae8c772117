// Package orchestrator wires the decorate → validate → evaluate → compile →
// execute pipeline behind a single Engine, with dependency injection friendly
// options for callers that need to swap the evaluator, formatters or logger.
package orchestrator
