package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSelection is returned when the driver reports an index outside the
	// offered options.
	ErrNoSelection = errors.New("tui: no option selected")
)
