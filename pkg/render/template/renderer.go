package template

import (
	"io"
)

// Executor renders a named template. It is all the HTML renderers need.
type Executor interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// TemplateRenderer is an Executor that also accepts page-wide values. Both
// the bundled engine and a github.com/goliatone/go-template engine satisfy it.
type TemplateRenderer interface {
	Executor
	GlobalContext(data any) error
}
