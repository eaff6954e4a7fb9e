// Package controls provides an in-memory selection control that satisfies
// selector.Control. It behaves like an HTML <select>: indexed option
// assignment pads with blank entries, the first option is auto-selected, and
// removing the selected option resets the selection.
package controls

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-cascade/pkg/selector"
)

// Select is a thread-safe in-memory selection control.
type Select struct {
	mu        sync.RWMutex
	name      string
	attrs     map[string]string
	options   []selector.Option
	selected  int
	listeners []func()
}

var _ selector.Control = (*Select)(nil)

// SelectOption configures a Select at construction.
type SelectOption func(*Select)

// WithPlaceholder seeds slot 0 with an empty-valued "please select" entry.
func WithPlaceholder(text string) SelectOption {
	return func(s *Select) {
		s.options = append([]selector.Option{{Value: "", Text: text}}, s.options...)
	}
}

// WithOptions seeds the option list.
func WithOptions(opts ...selector.Option) SelectOption {
	return func(s *Select) {
		s.options = append(s.options, opts...)
	}
}

// WithAttr seeds an attribute.
func WithAttr(name, value string) SelectOption {
	return func(s *Select) {
		s.attrs[name] = value
	}
}

func NewSelect(name string, fns ...SelectOption) *Select {
	s := &Select{
		name:     name,
		attrs:    make(map[string]string),
		selected: -1,
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(s)
	}
	if len(s.options) > 0 {
		s.selected = 0
	}
	return s
}

func (s *Select) Name() string {
	return s.name
}

func (s *Select) Attr(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attrs[name]
}

func (s *Select) SetAttr(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[name] = value
}

func (s *Select) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Value returns the selected option's value, or "" with no selection.
func (s *Select) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected < 0 || s.selected >= len(s.options) {
		return ""
	}
	return s.options[s.selected].Value
}

// SelectedIndex returns the selected slot or -1.
func (s *Select) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

func (s *Select) OptionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.options)
}

// Options returns a copy of the option list.
func (s *Select) Options() []selector.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]selector.Option{}, s.options...)
}

// Option returns the entry at index.
func (s *Select) Option(index int) (selector.Option, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.options) {
		return selector.Option{}, false
	}
	return s.options[index], true
}

func (s *Select) SetOption(index int, opt selector.Option) {
	if index < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < len(s.options) {
		s.options[index] = opt
		return
	}
	for len(s.options) < index {
		s.options = append(s.options, selector.Option{})
	}
	s.options = append(s.options, opt)
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *Select) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= len(s.options) {
		return
	}
	s.options = s.options[:n]
	if s.selected >= len(s.options) {
		if len(s.options) > 0 {
			s.selected = 0
		} else {
			s.selected = -1
		}
	}
}

// Choose selects the first option carrying value and fires change listeners.
func (s *Select) Choose(value string) error {
	s.mu.Lock()
	index := -1
	for i, opt := range s.options {
		if opt.Value == value {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return fmt.Errorf("controls: %s has no option %q", s.name, value)
	}
	s.selected = index
	s.mu.Unlock()

	s.Fire()
	return nil
}

// ChooseIndex selects slot index and fires change listeners.
func (s *Select) ChooseIndex(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.options) {
		s.mu.Unlock()
		return fmt.Errorf("controls: %s index %d out of range", s.name, index)
	}
	s.selected = index
	s.mu.Unlock()

	s.Fire()
	return nil
}

// Fire notifies change listeners without altering the selection.
func (s *Select) Fire() {
	s.mu.RLock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

// Controls adapts selects into a selector chain.
func Controls(selects ...*Select) []selector.Control {
	out := make([]selector.Control, 0, len(selects))
	for _, s := range selects {
		out = append(out, s)
	}
	return out
}

// NewChain builds one Select per name, each with the given placeholder.
func NewChain(placeholder string, names ...string) []*Select {
	out := make([]*Select, 0, len(names))
	for _, name := range names {
		var fns []SelectOption
		if placeholder != "" {
			fns = append(fns, WithPlaceholder(placeholder))
		}
		out = append(out, NewSelect(name, fns...))
	}
	return out
}
