// Package selector keeps a chain of dependent selection controls (for example
// province, city and district pickers) synchronized with a remote JSON source.
//
// Every control in the chain is tagged with a 1-based "level" attribute when
// the selector initializes. The first fetch carries no parameters and its
// response is handed to the DataCallback together with the level-1 control.
// Afterwards, a change on the control at level L calls the Callback, fetches
// the configured URL with {Param: selectedValue} and routes the response to
// the control(s) at level L+1. A change on the last level only emits a debug
// diagnostic.
//
// The host toolkit is reached through the Control interface, the transport
// through Fetcher, and continuations are serialized through a Dispatcher so
// DataCallback invocations never run concurrently.
package selector
