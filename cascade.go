// Package cascade links a chain of selection controls so that choosing a
// value at one level fetches and populates the options of the next level.
//
// The root package re-exports the selector API for callers that want a single
// import:
//
//	chain := controls.NewChain("Please select", "province", "city", "district")
//	sel, err := cascade.New("/api/regions", controls.Controls(chain...),
//	  cascade.WithBaseURL("http://localhost:8090"),
//	  cascade.WithDataCallback(shape.Populate(shape.Config{ResultsPath: "data"})),
//	)
//	if err != nil {
//	  return err
//	}
//	return sel.Init(ctx)
package cascade

import (
	"io/fs"

	vanilla "github.com/goliatone/go-cascade/pkg/renderers/vanilla"
	"github.com/goliatone/go-cascade/pkg/selector"
)

// Selector aliases selector.Selector.
type Selector = selector.Selector

// Config aliases selector.Config.
type Config = selector.Config

// OptionFn aliases selector.OptionFn.
type OptionFn = selector.OptionFn

// Control is the contract a selection control must satisfy.
type Control = selector.Control

// Group is the set of controls resolved for a level.
type Group = selector.Group

// Option is one value/text entry of a control.
type Option = selector.Option

// OptionsParams describes a CreateOptions call.
type OptionsParams = selector.OptionsParams

type (
	Callback          = selector.Callback
	DataCallback      = selector.DataCallback
	FetchErrorHandler = selector.FetchErrorHandler
	Fetcher           = selector.Fetcher
	Dispatcher        = selector.Dispatcher
	PopulatePolicy    = selector.PopulatePolicy
)

const (
	PopulateAccumulate = selector.PopulateAccumulate
	PopulateReplace    = selector.PopulateReplace
)

var (
	WithParam             = selector.WithParam
	WithBaseURL           = selector.WithBaseURL
	WithCallback          = selector.WithCallback
	WithDataCallback      = selector.WithDataCallback
	WithFetchErrorHandler = selector.WithFetchErrorHandler
	WithDebug             = selector.WithDebug
	WithLogger            = selector.WithLogger
	WithFetcher           = selector.WithFetcher
	WithDispatcher        = selector.WithDispatcher
	WithPopulatePolicy    = selector.WithPopulatePolicy
	WithLatestOnly        = selector.WithLatestOnly
	DefaultConfig         = selector.DefaultConfig
	NewConfig             = selector.NewConfig
	NewLoop               = selector.NewLoop
	ErrMissingURL         = selector.ErrMissingURL
	ErrNoControls         = selector.ErrNoControls
	ErrNilControl         = selector.ErrNilControl
	ErrRelativeURL        = selector.ErrRelativeURL
	ErrAlreadyInitialized = selector.ErrAlreadyInitialized
)

// New builds a selector for endpoint and controls. Call Init on the result.
func New(endpoint string, controls []Control, fns ...OptionFn) (*Selector, error) {
	return selector.New(endpoint, controls, fns...)
}

// NewWithConfig builds a selector from a Config value.
func NewWithConfig(cfg Config) (*Selector, error) {
	return selector.NewWithConfig(cfg)
}

// CreateOptions populates control from records outside of a selector.
func CreateOptions(control Control, records any, valueProp, textProp string) bool {
	return selector.CreateOptions(control, records, valueProp, textProp)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
