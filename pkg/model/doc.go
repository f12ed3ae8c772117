// Package model defines the data shapes shared by every stage of the
// rendering core: declared variables, conditions and their clauses, the
// hyperlink and CTA button records whose ids are embedded in template bodies,
// and the persisted EmailTemplate document that groups them.
//
// Runtime values arrive as map[string]any and are converted into the Value
// tagged variant. Value owns the coercion rules used by both the formatter and
// the condition evaluator: Number accepts numbers and numeric strings only,
// String produces the canonical text form (numbers in shortest decimal form,
// booleans as true/false, arrays comma-joined, objects as JSON, null as "").
package model
