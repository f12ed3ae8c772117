package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-mailtmpl/pkg/render/template"
)

const extension = ".tpl"

// Option configures where an Engine finds templates.
type Option func(*Engine) error

// WithBaseDir adds a directory of templates. Templates found there shadow
// templates of the same name in filesystems added with WithFS.
func WithBaseDir(dir string) Option {
	return func(e *Engine) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return nil
		}
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("pongo: template dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("pongo: template dir %s is not a directory", dir)
		}
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return fmt.Errorf("pongo: template dir: %w", err)
		}
		e.overrides = append(e.overrides, loader)
		return nil
	}
}

// WithFS adds a filesystem of templates, typically an embedded one.
func WithFS(fsys fs.FS) Option {
	return func(e *Engine) error {
		if fsys != nil {
			e.bases = append(e.bases, pongo2.NewFSLoader(fsys))
		}
		return nil
	}
}

// Engine renders ".tpl" templates through a pongo2 template set. Parsed
// templates are cached by the set.
type Engine struct {
	set       *pongo2.TemplateSet
	overrides []pongo2.TemplateLoader
	bases     []pongo2.TemplateLoader
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. At least one template source is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	loaders := append(append([]pongo2.TemplateLoader{}, e.overrides...), e.bases...)
	if len(loaders) == 0 {
		return nil, errors.New("pongo: no template source configured")
	}
	registerFilters()
	e.set = pongo2.NewSet("mailtmpl", loaders...)
	return e, nil
}

// RenderTemplate executes the template called name, adding the ".tpl"
// extension when it is missing. data must encode to a JSON object; templates
// address struct fields by their JSON names.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	if !strings.HasSuffix(name, extension) {
		name += extension
	}
	tpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("pongo: load %s: %w", name, err)
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", name, err)
	}
	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("pongo: encode data: %w", err)
	}
	var ctx map[string]any
	if err := json.Unmarshal(raw, &ctx); err != nil || ctx == nil {
		return nil, fmt.Errorf("pongo: template data must be an object, got %T", data)
	}
	return pongo2.Context(ctx), nil
}
