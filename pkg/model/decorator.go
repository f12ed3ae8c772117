package model

// Decorator enriches a template after it has been loaded but before it is
// compiled, e.g. to declare variables detected in the body.
type Decorator interface {
	Decorate(*EmailTemplate) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*EmailTemplate) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(tpl *EmailTemplate) error {
	return fn(tpl)
}
