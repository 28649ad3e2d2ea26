// Package nopsink provides a no-op event sink used for tests and when no
// external consumer is configured.
package nopsink

import (
	"context"

	"github.com/hivemesh/strand/pkg/events"
)

// Sink validates input and otherwise does nothing.
type Sink struct{}

// NewSink creates a new no-op sink.
func NewSink() *Sink {
	return &Sink{}
}

// Forward validates the event and discards it.
func (s *Sink) Forward(_ context.Context, ev events.Event) error {
	if ev.Type == "" {
		return events.ErrEmptyEvent
	}
	return nil
}

// Close is a no-op.
func (s *Sink) Close() error {
	return nil
}
