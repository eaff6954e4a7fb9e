package selector

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingURL is returned when the selector is built without an endpoint.
	ErrMissingURL = errors.New("selector: url is required")
	// ErrNoControls is returned when the control chain is empty.
	ErrNoControls = errors.New("selector: at least one control is required")
	// ErrNilControl is returned when the chain contains a nil control.
	ErrNilControl = errors.New("selector: control is nil")
	// ErrRelativeURL is returned when an HTTPFetcher is given a relative
	// endpoint and no absolute BaseURL to resolve it against.
	ErrRelativeURL = errors.New("selector: relative url needs a base url")
	// ErrAlreadyInitialized is returned by a second Init call.
	ErrAlreadyInitialized = errors.New("selector: already initialized")
)

// StatusError reports a non-2xx response from the data endpoint.
type StatusError struct {
	Code int
	URL  string
}

func (e StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "unexpected status"
	}
	if e.URL == "" {
		return "selector: " + text
	}
	return "selector: " + text + " (" + e.URL + ")"
}

// StatusCode returns the HTTP status carried by the error.
func (e StatusError) StatusCode() int {
	return e.Code
}
