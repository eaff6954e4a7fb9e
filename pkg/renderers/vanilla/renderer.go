// Package vanilla renders a cascade chain as plain HTML <select> elements.
// Each select carries its level attribute and current options so a page can
// be served with the first levels already populated.
package vanilla

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/selector"
	rendertemplate "github.com/goliatone/go-cascade/pkg/render/template"
	gotemplate "github.com/goliatone/go-cascade/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.Executor
	globals          map[string]any
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine. It must resolve
// ChainTemplate and PageTemplate.
func WithTemplateRenderer(renderer rendertemplate.Executor) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithGlobalData sets page-wide template values such as "lang" and "title".
// A Page field that is set overrides the matching value. Injected engines
// receive the values only when they implement GlobalContext.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

type Renderer struct {
	templates rendertemplate.Executor
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobalData(cfg.globals),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		return &Renderer{templates: engine}, nil
	}
	if global, ok := renderer.(rendertemplate.TemplateRenderer); ok && len(cfg.globals) > 0 {
		if err := global.GlobalContext(cfg.globals); err != nil {
			return nil, fmt.Errorf("vanilla renderer: apply global data: %w", err)
		}
	}
	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Chain aliases render.Chain.
type Chain = render.Chain

// ChainFromSelector captures a selector's chain and configuration.
func ChainFromSelector(sel *selector.Selector) Chain {
	return render.ChainFromSelector(sel)
}

var _ render.Renderer = (*Renderer)(nil)

// Render writes the chain markup. Option labels are reduced to plain text.
func (r *Renderer) Render(chain Chain) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	view := render.Snapshot(chain)
	for i := range view.Controls {
		for j := range view.Controls[i].Options {
			opt := &view.Controls[i].Options[j]
			opt.Text = sanitizeLabel(opt.Text)
		}
	}

	out, err := r.templates.RenderTemplate(ChainTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render chain: %w", err)
	}
	return []byte(out), nil
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips markup from option text. The result is HTML-safe and
// rendered without further escaping.
func sanitizeLabel(raw string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(labelPolicy.Sanitize(raw))
}

// Page wraps a rendered chain in a standalone HTML document whose form
// submits the chain selections back to Action with GET.
type Page struct {
	Title  string
	Lang   string
	Action string
	Submit string
	Chain  Chain
}

// RenderPage renders page.Chain and embeds it in the page template. Empty
// fields fall back to the global data.
func (r *Renderer) RenderPage(page Page) ([]byte, error) {
	body, err := r.Render(page.Chain)
	if err != nil {
		return nil, err
	}
	data := map[string]any{"body": string(body)}
	for key, value := range map[string]string{
		"title":  page.Title,
		"lang":   page.Lang,
		"action": page.Action,
		"submit": page.Submit,
	} {
		if value != "" {
			data[key] = value
		}
	}
	out, err := r.templates.RenderTemplate(PageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(out), nil
}
