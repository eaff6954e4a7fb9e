package selector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Selector wires a chain of controls into a cascade.
type Selector struct {
	id       string
	cfg      Config
	controls []Control

	mu          sync.Mutex
	initialized bool
	ctx         context.Context
	issued      map[int]uint64

	pending sync.WaitGroup
}

// New builds a selector for the endpoint and control chain. Call Init to tag
// levels, attach listeners and load the first level.
func New(endpoint string, controls []Control, fns ...OptionFn) (*Selector, error) {
	all := make([]OptionFn, 0, len(fns)+1)
	all = append(all, func(c *Config) {
		c.URL = endpoint
		c.Controls = controls
	})
	all = append(all, fns...)
	return NewWithConfig(NewConfig(all...))
}

// NewWithConfig builds a selector from a Config. Defaults are applied again so
// callers may pass a partially filled value.
func NewWithConfig(cfg Config) (*Selector, error) {
	cfg = NewConfig(func(c *Config) { *c = cfg })
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}
	if len(cfg.Controls) == 0 {
		return nil, ErrNoControls
	}
	for i, control := range cfg.Controls {
		if control == nil {
			return nil, fmt.Errorf("%w (index %d)", ErrNilControl, i)
		}
	}
	if f, ok := cfg.Fetcher.(HTTPFetcher); ok {
		if _, err := f.Resolve(cfg.URL); err != nil {
			return nil, err
		}
	}
	return &Selector{
		id:       uuid.NewString(),
		cfg:      cfg,
		controls: cfg.Controls,
		issued:   make(map[int]uint64),
	}, nil
}

// ID identifies the selector in diagnostics.
func (s *Selector) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Config returns a copy of the selector configuration.
func (s *Selector) Config() Config {
	if s == nil {
		return DefaultConfig()
	}
	cfg := s.cfg
	cfg.Controls = append([]Control{}, s.controls...)
	return cfg
}

// Controls returns the chain in level order.
func (s *Selector) Controls() []Control {
	if s == nil {
		return nil
	}
	return append([]Control{}, s.controls...)
}

// Init tags levels, attaches change listeners and issues the top-level fetch
// whose response is routed to the first control. ctx bounds every fetch the
// selector issues.
func (s *Selector) Init(ctx context.Context) error {
	if ctx == nil {
		return errors.New("selector: context is required")
	}
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.ctx = ctx
	s.mu.Unlock()

	for i, control := range s.controls {
		control.SetAttr(LevelAttr, strconv.Itoa(i+1))
	}
	for _, control := range s.controls {
		control.OnChange(func() {
			s.Change(control)
		})
	}

	s.fetch(Group{s.controls[0]}, 1, nil)
	return nil
}

// Level returns the controls whose level attribute equals level.
func (s *Selector) Level(level int) Group {
	want := strconv.Itoa(level)
	var out Group
	for _, control := range s.controls {
		if control.Attr(LevelAttr) == want {
			out = append(out, control)
		}
	}
	return out
}

// Change runs the change protocol for control as if the host fired a change
// event. It reports whether a next-level fetch was issued.
func (s *Selector) Change(control Control) bool {
	if s == nil || control == nil {
		return false
	}
	raw := control.Attr(LevelAttr)
	level, err := strconv.Atoi(strings.TrimSpace(raw))
	var next Group
	if err == nil {
		next = s.Level(level + 1)
	}
	if next.Len() == 0 {
		s.Diagnose("already at last level", "level", raw)
		return false
	}

	value := control.Value()
	s.cfg.Callback(s, control, value)

	params := url.Values{}
	params.Set(s.cfg.Param, value)
	s.fetch(next, level+1, params)
	return true
}

// Wait blocks until every in-flight fetch has handed its continuation to the
// dispatcher.
func (s *Selector) Wait() {
	if s == nil {
		return
	}
	s.pending.Wait()
}

func (s *Selector) fetch(target Group, level int, params url.Values) {
	ctx := s.context()
	seq := s.issue(level)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		data, err := s.cfg.Fetcher.Fetch(ctx, s.cfg.URL, params)
		if err != nil {
			s.cfg.Dispatcher.Post(func() {
				if s.cfg.LatestOnly && s.stale(level, seq) {
					s.Diagnose("dropping superseded failure", "level", level, "error", err)
					return
				}
				s.Diagnose("fetch failed", "url", s.cfg.URL, "level", level, "error", err)
				if s.cfg.OnFetchError != nil {
					s.cfg.OnFetchError(s, target, err)
				}
			})
			return
		}

		s.cfg.Dispatcher.Post(func() {
			if s.cfg.LatestOnly && s.stale(level, seq) {
				s.Diagnose("dropping superseded response", "level", level)
				return
			}
			s.cfg.DataCallback(s, data, target)
		})
	}()
}

func (s *Selector) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *Selector) issue(level int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[level]++
	return s.issued[level]
}

func (s *Selector) stale(level int, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issued[level] != seq
}

// Diagnose writes a developer-facing message at error level when debug
// output is enabled. It is silent otherwise and never reports to end users.
func (s *Selector) Diagnose(msg string, args ...any) {
	if s == nil || !s.cfg.Debug || s.cfg.Logger == nil {
		return
	}
	attrs := make([]any, 0, len(args)+2)
	attrs = append(attrs, slog.String("selector", s.id))
	attrs = append(attrs, args...)
	s.cfg.Logger.Error(msg, attrs...)
}
