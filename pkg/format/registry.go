package format

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Func formats a single value.
type Func func(model.Value) string

// Registry stores formatters by kind. Unknown kinds fall back to identity
// stringification.
type Registry struct {
	mu         sync.RWMutex
	formatters map[model.FormatterKind]Func
}

// NewRegistry creates a registry pre-loaded with the built-in formatters.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[model.FormatterKind]Func)}
	for kind, fn := range builtins() {
		r.formatters[kind] = fn
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding only the built-in formatters.
// Callers that need custom formatters should use NewRegistry instead of
// mutating the shared instance.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a named formatter. Duplicate kinds return an error.
func (r *Registry) Register(kind model.FormatterKind, fn Func) error {
	name := model.FormatterKind(strings.TrimSpace(string(kind)))
	if name == "" {
		return fmt.Errorf("format: formatter kind is required")
	}
	if fn == nil {
		return fmt.Errorf("format: formatter %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[name]; exists {
		return fmt.Errorf("format: formatter %q already registered", name)
	}
	r.formatters[name] = fn
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind model.FormatterKind, fn Func) {
	if err := r.Register(kind, fn); err != nil {
		panic(err)
	}
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind model.FormatterKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.formatters[kind]
	return ok
}

// List returns the registered kinds sorted by name.
func (r *Registry) List() []model.FormatterKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]model.FormatterKind, 0, len(r.formatters))
	for kind := range r.formatters {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Format applies the formatter registered for kind.
func (r *Registry) Format(value model.Value, kind model.FormatterKind) string {
	if r == nil {
		return value.String()
	}
	r.mu.RLock()
	fn, ok := r.formatters[kind]
	r.mu.RUnlock()
	if !ok {
		return value.String()
	}
	return fn(value)
}

// Format converts raw into display text using the built-in formatters.
func Format(raw any, kind model.FormatterKind) string {
	return Default().Format(model.ValueOf(raw), kind)
}

// Variables formats every declared variable from values, keyed by name.
// Missing values format as the empty string.
func (r *Registry) Variables(values model.Values, variables []model.Variable) map[string]string {
	out := make(map[string]string, len(variables))
	for _, v := range variables {
		value, _ := values.Lookup(v.Name)
		out[v.Name] = r.Format(value, v.Formatter)
	}
	return out
}
