package events

import "context"

// Sink forwards bus events to an external consumer.
type Sink interface {
	Forward(ctx context.Context, ev Event) error
	Close() error
}

// Attach subscribes the sink to the bus. Forwarding failures are dropped:
// the event surface is fire-and-forget and a slow or dead sink must never
// affect adapter callers. Returns the unsubscribe func.
func Attach(bus *Bus, sink Sink) func() {
	return bus.Subscribe(func(ev Event) {
		_ = sink.Forward(context.Background(), ev)
	})
}
