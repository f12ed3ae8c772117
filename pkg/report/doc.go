// Package report projects an email template into a human-readable
// requirements report: declared variables, condition rules with their negated
// else rules, links, buttons and the plain-text body. Negate and
// NegateCondition are also usable on their own wherever the implicit else rule
// of a condition has to be described.
package report
