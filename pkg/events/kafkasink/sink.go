// Package kafkasink forwards adapter events to a Kafka topic so external
// consumers (the collective-intelligence layer observing hivemind:share,
// dashboards watching sync:completed) can subscribe without linking the
// adapter.
//
// Messages are JSON-encoded Event envelopes keyed by event type, so a
// consumer partitioning by key sees each event kind in order.
package kafkasink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/events"
)

// Config holds the Kafka connection settings.
type Config struct {
	// Brokers is the bootstrap broker list.
	Brokers []string

	// Topic receives every forwarded event.
	Topic string

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

// Sink writes events to a Kafka topic.
type Sink struct {
	writer *kafka.Writer
	logger *zap.Logger
}

var _ events.Sink = (*Sink)(nil)

// NewSink creates a Kafka-backed event sink.
func NewSink(cfg Config) (*Sink, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	log := cfg.Logger

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.Hash{},
		// Async keeps event emission off the broker's critical path: a
		// slow or dead broker must never stall an adapter caller. Close
		// flushes whatever is still queued.
		Async: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn("kafka event delivery failed",
					zap.Int("messages", len(messages)),
					zap.Error(err),
				)
			}
		},
	}

	return &Sink{
		writer: writer,
		logger: cfg.Logger,
	}, nil
}

// Forward enqueues the event as one Kafka message. Delivery happens on the
// writer's background goroutines; delivery failures are logged by the
// completion callback, not returned here.
func (s *Sink) Forward(ctx context.Context, ev events.Event) error {
	if ev.Type == "" {
		return events.ErrEmptyEvent
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", ev.Type, err)
	}

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Type),
		Value: payload,
	})
	if err != nil {
		s.logger.Warn("kafka event forward failed",
			zap.String("type", ev.Type),
			zap.Error(err),
		)
		return fmt.Errorf("writing event %s: %w", ev.Type, err)
	}

	return nil
}

// Close flushes and closes the Kafka writer.
func (s *Sink) Close() error {
	return s.writer.Close()
}
