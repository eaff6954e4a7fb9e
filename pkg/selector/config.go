package selector

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	DefaultParam         = "id"
	DefaultValueProperty = "id"
	DefaultTextProperty  = "name_cn"
)

// Callback runs synchronously after a selection change and before the
// next-level fetch. It does not influence the cascade.
type Callback func(sel *Selector, control Control, value string)

// DataCallback receives every fetch response, including the initial one, and
// is responsible for turning it into options on target.
type DataCallback func(sel *Selector, data any, target Group)

// FetchErrorHandler observes fetches that never reach the DataCallback.
type FetchErrorHandler func(sel *Selector, target Group, err error)

// PopulatePolicy controls what CreateOptions does with options already
// present beyond slot 0.
type PopulatePolicy string

const (
	// PopulateAccumulate overwrites slots positionally and leaves trailing
	// options from earlier populations in place.
	PopulateAccumulate PopulatePolicy = "accumulate"
	// PopulateReplace truncates the list to the placeholder slot first.
	PopulateReplace PopulatePolicy = "replace"
)

type Config struct {
	URL      string
	Controls []Control
	Param    string
	// BaseURL resolves a relative URL for the HTTP fetcher.
	BaseURL string

	Callback     Callback
	DataCallback DataCallback
	OnFetchError FetchErrorHandler

	Debug  bool
	Logger *slog.Logger

	Fetcher    Fetcher
	Dispatcher Dispatcher
	Populate   PopulatePolicy
	LatestOnly bool
}

type OptionFn func(*Config)

func DefaultConfig() Config {
	return Config{
		Param:    DefaultParam,
		Populate: PopulateAccumulate,
	}
}

// NewConfig applies fns over DefaultConfig and fills any zero values back in.
func NewConfig(fns ...OptionFn) Config {
	cfg := DefaultConfig()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&cfg)
	}
	cfg.URL = strings.TrimSpace(cfg.URL)
	if strings.TrimSpace(cfg.Param) == "" {
		cfg.Param = DefaultParam
	}
	if cfg.Populate == "" {
		cfg.Populate = PopulateAccumulate
	}
	if cfg.Callback == nil {
		cfg.Callback = func(*Selector, Control, string) {}
	}
	if cfg.DataCallback == nil {
		cfg.DataCallback = func(*Selector, any, Group) {}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	switch f := cfg.Fetcher.(type) {
	case nil:
		cfg.Fetcher = HTTPFetcher{Client: http.DefaultClient, BaseURL: cfg.BaseURL}
	case HTTPFetcher:
		if f.BaseURL == "" {
			f.BaseURL = cfg.BaseURL
			cfg.Fetcher = f
		}
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = &Serial{}
	}
	if cfg.Controls != nil {
		cfg.Controls = append([]Control{}, cfg.Controls...)
	}
	return cfg
}

func WithParam(name string) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Param = name
	}
}

func WithCallback(fn Callback) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Callback = fn
	}
}

// WithBaseURL sets the origin relative URLs are resolved against, e.g.
// "http://localhost:8090" for URL "/api/regions".
func WithBaseURL(base string) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.BaseURL = base
	}
}

func WithDataCallback(fn DataCallback) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.DataCallback = fn
	}
}

func WithFetchErrorHandler(fn FetchErrorHandler) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.OnFetchError = fn
	}
}

func WithDebug(debug bool) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Debug = debug
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Logger = logger
	}
}

func WithFetcher(fetcher Fetcher) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Fetcher = fetcher
	}
}

func WithDispatcher(dispatcher Dispatcher) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Dispatcher = dispatcher
	}
}

func WithPopulatePolicy(policy PopulatePolicy) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.Populate = policy
	}
}

// WithLatestOnly drops responses superseded by a newer fetch for the same
// level. Off by default: overlapping responses race for the target.
func WithLatestOnly(enabled bool) OptionFn {
	return func(c *Config) {
		if c == nil {
			return
		}
		c.LatestOnly = enabled
	}
}
