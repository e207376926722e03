package template

import "io"

// Renderer is the template engine seam used by the HTML renderers.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
