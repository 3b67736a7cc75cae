package render

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract and is the seam the view layer renders through. The bundled
// gotemplate subpackage provides the default pongo2-backed implementation.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
