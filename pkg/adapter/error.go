package adapter

import "errors"

// ErrDisposed is returned by every operation invoked after Destroy.
var ErrDisposed = errors.New("adapter has been disposed")

var (
	errNilBus    = errors.New("event bus is required")
	errNilLogger = errors.New("logger is required")
)
