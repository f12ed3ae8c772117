package template

import "io"

// TemplateRenderer renders a named template with data. The rendered text is
// returned and copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
