package render

import (
	"github.com/goliatone/go-cascade/pkg/selector"
)

// Renderer converts a control chain into a byte representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(chain Chain) ([]byte, error)
}

// Chain describes the controls to render. Endpoint and Param let a client
// continue the cascade from the rendered state.
type Chain struct {
	ID       string
	Endpoint string
	Param    string
	Controls []selector.Control
}

// ChainFromSelector captures a selector's chain and configuration.
func ChainFromSelector(sel *selector.Selector) Chain {
	cfg := sel.Config()
	return Chain{
		ID:       sel.ID(),
		Endpoint: cfg.URL,
		Param:    cfg.Param,
		Controls: sel.Controls(),
	}
}

// ListedControl is implemented by controls that expose their option list and
// selection, such as *controls.Select.
type ListedControl interface {
	Name() string
	Options() []selector.Option
	SelectedIndex() int
}
