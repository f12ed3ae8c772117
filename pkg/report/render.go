package report

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
	"sync"

	"github.com/goliatone/go-mailtmpl/pkg/render/template"
	"github.com/goliatone/go-mailtmpl/pkg/render/template/pongo"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Format selects the document type Render produces.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "markdown", "md" and "html" in any case.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("report: unknown format %q", raw)
}

// Extension returns the file extension for documents of format f.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

func (f Format) templateName() string {
	if f == FormatHTML {
		return "report.html"
	}
	return "report.md"
}

// Renderer turns a Report into a document using a template renderer that
// provides "report.md" and "report.html" templates.
type Renderer struct {
	engine template.TemplateRenderer
}

// NewRenderer wraps engine. Use it to supply custom report templates.
func NewRenderer(engine template.TemplateRenderer) *Renderer {
	return &Renderer{engine: engine}
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// DefaultRenderer returns a renderer backed by the embedded templates.
func DefaultRenderer() (*Renderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = NewDirRenderer("")
	})
	return defaultRenderer, defaultErr
}

// NewDirRenderer returns a renderer whose "report.md.tpl" and
// "report.html.tpl" are read from dir when present there, falling back to the
// embedded templates. An empty dir uses the embedded templates only.
func NewDirRenderer(dir string) (*Renderer, error) {
	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("report: embedded templates: %w", err)
	}
	engine, err := pongo.New(pongo.WithBaseDir(dir), pongo.WithFS(templates))
	if err != nil {
		return nil, fmt.Errorf("report: template engine: %w", err)
	}
	return NewRenderer(engine), nil
}

// Render writes r as a document of the given format. The rendered document is
// returned and copied to every writer in out.
func (rd *Renderer) Render(ctx context.Context, r Report, format Format, out ...io.Writer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rd == nil || rd.engine == nil {
		return "", fmt.Errorf("report: renderer is not configured")
	}
	if format != FormatMarkdown && format != FormatHTML {
		return "", fmt.Errorf("report: unknown format %q", format)
	}
	doc, err := rd.engine.RenderTemplate(format.templateName(), map[string]any{"report": r.normalized()}, out...)
	if err != nil {
		return "", fmt.Errorf("report: render %s: %w", format, err)
	}
	return doc, nil
}

// normalized replaces nil lists with empty ones so templates see empty
// sequences rather than null.
func (r Report) normalized() Report {
	if r.Variables == nil {
		r.Variables = []VariableRow{}
	}
	if r.Conditions == nil {
		r.Conditions = []ConditionRow{}
	}
	if r.Hyperlinks == nil {
		r.Hyperlinks = []LinkRow{}
	}
	if r.CTAButtons == nil {
		r.CTAButtons = []LinkRow{}
	}
	if r.Content == nil {
		r.Content = []string{}
	}
	return r
}

// Render renders r with the embedded templates.
func Render(ctx context.Context, r Report, format Format, out ...io.Writer) (string, error) {
	rd, err := DefaultRenderer()
	if err != nil {
		return "", err
	}
	return rd.Render(ctx, r, format, out...)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName derives the report file name from a template name, e.g.
// "Welcome Mail" with ".md" gives "Welcome_Mail_FRD.md".
func FileName(templateName, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return whitespaceRun.ReplaceAllString(templateName, "_") + "_FRD" + ext
}
