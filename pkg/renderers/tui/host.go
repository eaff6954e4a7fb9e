// Package tui walks a cascade in the terminal. Each level's options are
// offered as a prompt; choosing one fires the control's change event, which
// makes the selector fetch and populate the next level.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-cascade/pkg/controls"
	"github.com/goliatone/go-cascade/pkg/selector"
)

// Host drives a selector chain through a PromptDriver.
type Host struct {
	driver   PromptDriver
	loop     *selector.Loop
	pageSize int
	labels   map[string]string
	theme    Theme
}

func New(options ...Option) *Host {
	h := &Host{
		driver: NewSurveyDriver(nil),
		labels: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

// Run initializes sel, then prompts level by level. It stops after the last
// control or at the first level that received no options, and returns the
// chosen values keyed by control name.
func (h *Host) Run(ctx context.Context, sel *selector.Selector, chain []*controls.Select) (map[string]string, error) {
	if sel == nil {
		return nil, errors.New("tui: selector is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := sel.Init(ctx); err != nil && !errors.Is(err, selector.ErrAlreadyInitialized) {
		return nil, fmt.Errorf("tui: init selector: %w", err)
	}
	h.settle(sel)

	chosen := make(map[string]string, len(chain))
	for _, control := range chain {
		if control == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return chosen, err
		}

		all := control.Options()
		if len(all) <= 1 {
			if err := h.info(ctx, fmt.Sprintf("no options for %s", control.Name())); err != nil {
				return chosen, err
			}
			break
		}
		offered := all[1:]
		labels := make([]string, len(offered))
		for i, opt := range offered {
			labels[i] = opt.Text
		}

		index, err := h.driver.Select(ctx, SelectConfig{
			Message:  h.message(control.Name()),
			Options:  labels,
			PageSize: h.pageSize,
		})
		if err != nil {
			return chosen, err
		}
		if index < 0 || index >= len(offered) {
			return chosen, fmt.Errorf("%w: %s", ErrNoSelection, control.Name())
		}

		if err := control.ChooseIndex(index + 1); err != nil {
			return chosen, err
		}
		chosen[control.Name()] = offered[index].Value
		h.settle(sel)
	}
	return chosen, nil
}

func (h *Host) settle(sel *selector.Selector) {
	sel.Wait()
	if h.loop != nil {
		h.loop.Drain()
	}
}

func (h *Host) message(name string) string {
	label := h.labels[name]
	if label == "" {
		label = name
	}
	return h.theme.PromptPrefix + label
}

func (h *Host) info(ctx context.Context, msg string) error {
	return h.driver.Info(ctx, h.theme.InfoPrefix+msg)
}
