package tui

import "github.com/goliatone/go-cascade/pkg/selector"

// Theme captures optional message prefixes the host applies when printing.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
}

// Option configures the terminal host.
type Option func(*Host)

// WithPromptDriver overrides the prompt driver used by the host.
func WithPromptDriver(driver PromptDriver) Option {
	return func(h *Host) {
		if driver != nil {
			h.driver = driver
		}
	}
}

// WithLoop drains loop after every fetch. Use it when the selector was built
// with selector.WithDispatcher(loop).
func WithLoop(loop *selector.Loop) Option {
	return func(h *Host) {
		h.loop = loop
	}
}

// WithPageSize limits how many options a prompt shows at once.
func WithPageSize(size int) Option {
	return func(h *Host) {
		if size > 0 {
			h.pageSize = size
		}
	}
}

// WithLabels maps control names to prompt messages.
func WithLabels(labels map[string]string) Option {
	return func(h *Host) {
		for name, label := range labels {
			h.labels[name] = label
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(h *Host) {
		h.theme = theme
	}
}
