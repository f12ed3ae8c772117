package model

import "time"

// VariableType enumerates the value kinds a declared variable may hold.
type VariableType string

const (
	VariableTypeString  VariableType = "string"
	VariableTypeNumber  VariableType = "number"
	VariableTypeBoolean VariableType = "boolean"
	VariableTypeImage   VariableType = "image"
	VariableTypeURL     VariableType = "url"
	VariableTypeArray   VariableType = "array"
	VariableTypeObject  VariableType = "object"
)

// Valid reports whether t is one of the declared variable types. The zero value
// is accepted and treated as string.
func (t VariableType) Valid() bool {
	switch t {
	case "", VariableTypeString, VariableTypeNumber, VariableTypeBoolean,
		VariableTypeImage, VariableTypeURL, VariableTypeArray, VariableTypeObject:
		return true
	}
	return false
}

// FormatterKind selects how a variable value is turned into display text.
type FormatterKind string

const (
	FormatterNone       FormatterKind = "none"
	FormatterCurrency   FormatterKind = "currency"
	FormatterDate       FormatterKind = "date"
	FormatterDateTime   FormatterKind = "datetime"
	FormatterTime       FormatterKind = "time"
	FormatterPercentage FormatterKind = "percentage"
	FormatterUppercase  FormatterKind = "uppercase"
	FormatterLowercase  FormatterKind = "lowercase"
	FormatterCapitalize FormatterKind = "capitalize"
)

// FormatterKinds lists the built-in formatter selectors in display order.
func FormatterKinds() []FormatterKind {
	return []FormatterKind{
		FormatterNone, FormatterCurrency, FormatterDate, FormatterDateTime,
		FormatterTime, FormatterPercentage, FormatterUppercase,
		FormatterLowercase, FormatterCapitalize,
	}
}

// Operator is a clause comparison operator.
type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpGreater        Operator = ">"
	OpLess           Operator = "<"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
	OpContains       Operator = "contains"
	OpNotContains    Operator = "notContains"
)

// Valid reports whether op is a supported comparison operator.
func (op Operator) Valid() bool {
	switch op {
	case OpEqual, OpNotEqual, OpGreater, OpLess, OpGreaterOrEqual,
		OpLessOrEqual, OpContains, OpNotContains:
		return true
	}
	return false
}

// Numeric reports whether op compares both sides as numbers.
func (op Operator) Numeric() bool {
	switch op {
	case OpGreater, OpLess, OpGreaterOrEqual, OpLessOrEqual:
		return true
	}
	return false
}

// LogicOperator combines clause results. It applies uniformly across all
// clauses of a condition.
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
)

// Valid reports whether l is AND or OR. The zero value is accepted and treated
// as AND.
func (l LogicOperator) Valid() bool {
	return l == "" || l == LogicAnd || l == LogicOr
}

// ValueType states how a clause operand is interpreted.
type ValueType string

const (
	ValueLiteral   ValueType = "literal"
	ValueVariable  ValueType = "variable"
	ValueCondition ValueType = "condition"
)

// Valid reports whether v is a known operand kind. The zero value is accepted
// and treated as literal.
func (v ValueType) Valid() bool {
	return v == "" || v == ValueLiteral || v == ValueVariable || v == ValueCondition
}

// Variable is a declared placeholder. Name is unique within a template.
type Variable struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Type        VariableType  `json:"type" yaml:"type"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Formatter   FormatterKind `json:"formatter,omitempty" yaml:"formatter,omitempty"`
}

// ConditionClause compares the value of Variable against Value using Operator.
type ConditionClause struct {
	Variable  string    `json:"variable" yaml:"variable"`
	Operator  Operator  `json:"operator" yaml:"operator"`
	Value     string    `json:"value" yaml:"value"`
	ValueType ValueType `json:"valueType" yaml:"valueType"`
}

// ConditionDefinition is a named boolean rule with true/false branch content.
type ConditionDefinition struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Clauses       []ConditionClause `json:"clauses" yaml:"clauses"`
	LogicOperator LogicOperator     `json:"logicOperator" yaml:"logicOperator"`
	Content       string            `json:"content" yaml:"content"`
	HasElse       bool              `json:"hasElse" yaml:"hasElse"`
	ElseContent   string            `json:"elseContent,omitempty" yaml:"elseContent,omitempty"`
}

// Logic returns the effective logic operator, defaulting to AND.
func (c ConditionDefinition) Logic() LogicOperator {
	if c.LogicOperator == LogicOr {
		return LogicOr
	}
	return LogicAnd
}

// Hyperlink is an inline link inserted into the body. The body carries ID in a
// data-hyperlink-id attribute; this record holds the current URL.
type Hyperlink struct {
	ID          string    `json:"id" yaml:"id"`
	URL         string    `json:"url" yaml:"url"`
	Text        string    `json:"text" yaml:"text"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// CTAButton is a call-to-action button inserted into the body. The body
// carries ID in a data-cta-id attribute.
type CTAButton struct {
	ID          string    `json:"id" yaml:"id"`
	Text        string    `json:"text" yaml:"text"`
	URL         string    `json:"url" yaml:"url"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// EmailTemplate is the persisted template document produced by the editing
// surface.
type EmailTemplate struct {
	ID           string                `json:"id" yaml:"id"`
	Name         string                `json:"name" yaml:"name"`
	Description  string                `json:"description" yaml:"description"`
	OriginalHTML string                `json:"original_html" yaml:"original_html"`
	TemplateHTML string                `json:"template_html" yaml:"template_html"`
	Variables    []Variable            `json:"variables" yaml:"variables"`
	Conditions   []ConditionDefinition `json:"conditions" yaml:"conditions"`
	Hyperlinks   []Hyperlink           `json:"hyperlinks" yaml:"hyperlinks"`
	CTAButtons   []CTAButton           `json:"cta_buttons" yaml:"cta_buttons"`
	PreviewData  map[string]any        `json:"preview_data" yaml:"preview_data"`
	CreatedAt    time.Time             `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at" yaml:"updated_at"`
	UserID       string                `json:"user_id,omitempty" yaml:"user_id,omitempty"`
}

// Body returns the working template body, falling back to the original HTML
// when no template body has been saved yet.
func (t EmailTemplate) Body() string {
	if t.TemplateHTML != "" {
		return t.TemplateHTML
	}
	return t.OriginalHTML
}

// Variable looks up a declared variable by name.
func (t EmailTemplate) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// Condition looks up a declared condition by name.
func (t EmailTemplate) Condition(name string) (ConditionDefinition, bool) {
	for _, c := range t.Conditions {
		if c.Name == name {
			return c, true
		}
	}
	return ConditionDefinition{}, false
}
