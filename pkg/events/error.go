package events

import "errors"

// ErrEmptyEvent indicates an event with no type was handed to a sink.
var ErrEmptyEvent = errors.New("empty event")
