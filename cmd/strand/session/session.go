// Package session wires a fully-configured adapter for one-shot CLI
// commands: config resolution, logging, the event bus and optional Kafka
// sink, the MCP connection, and the adapter itself, torn down as a unit.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/adapter"
	"github.com/hivemesh/strand/pkg/config"
	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/events/kafkasink"
	"github.com/hivemesh/strand/pkg/logger"
	"github.com/hivemesh/strand/pkg/tools"
	"github.com/hivemesh/strand/pkg/tools/mcptool"
)

// Session is one live adapter plus its collaborators.
type Session struct {
	Adapter *adapter.Adapter
	Config  *config.Config
	Logger  *zap.Logger

	sinkClose func() error
}

// Open builds and starts an adapter from a prepared viper instance (see
// config.InitViper and config.BindRegisteredFlags). A missing or
// unreachable MCP server is not an error: the adapter starts in fallback
// mode, exactly as the availability contract requires.
func Open(ctx context.Context, v *viper.Viper, debug bool) (*Session, error) {
	cfg := config.FromViper(v)

	if !cfg.Adapter.Enabled {
		return nil, errors.New("adapter is disabled (adapter.enabled = false)")
	}

	log := logger.NewLogger(debug || cfg.Log.Debug)
	bus := events.NewBus()

	s := &Session{Config: cfg, Logger: log}

	if cfg.Events.KafkaBrokers != "" {
		sink, err := kafkasink.NewSink(kafkasink.Config{
			Brokers: strings.Split(cfg.Events.KafkaBrokers, ","),
			Topic:   cfg.Events.KafkaTopic,
			Logger:  log,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring kafka sink: %w", err)
		}
		events.Attach(bus, sink)
		s.sinkClose = sink.Close
	}

	invoker := connectRemote(ctx, cfg, log)

	a, err := newAdapter(cfg, invoker, bus, log)
	if err != nil {
		s.closeSink()
		return nil, err
	}

	if err := a.Start(ctx); err != nil {
		s.closeSink()
		return nil, err
	}

	s.Adapter = a
	return s, nil
}

// newAdapter assembles the adapter from the resolved config.
func newAdapter(cfg *config.Config, invoker tools.Invoker, bus *events.Bus, log *zap.Logger) (*adapter.Adapter, error) {
	return adapter.New(adapter.Config{
		Settings: adapter.Settings{
			DefaultGroupID:   cfg.Adapter.DefaultGroupID,
			MaxNodes:         cfg.Adapter.MaxNodes,
			MaxFacts:         cfg.Adapter.MaxFacts,
			AutoSync:         cfg.Sync.Auto,
			SyncInterval:     time.Duration(cfg.Sync.IntervalSeconds) * time.Second,
			TemporalTracking: cfg.Temporal.Enabled,
		},
		Invoker: invoker,
		Bus:     bus,
		Logger:  log,
	})
}

// closeSink releases the event sink after a failed startup; safe when none
// was attached. Errors are logged, not returned, since the session is
// already being torn down for a different reason.
func (s *Session) closeSink() {
	if s.sinkClose == nil {
		return
	}
	if err := s.sinkClose(); err != nil {
		s.Logger.Warn("closing event sink", zap.Error(err))
	}
}

// connectRemote attempts the MCP connection described by the config.
// Returns nil, meaning "capability absent", when no server is configured
// or the connection/probe fails.
func connectRemote(ctx context.Context, cfg *config.Config, log *zap.Logger) tools.Invoker {
	transport := mcptool.Transport(cfg.Remote.Transport)
	switch transport {
	case mcptool.TransportStdio:
		if cfg.Remote.Command == "" {
			return nil
		}
	case mcptool.TransportHTTP:
		if cfg.Remote.URL == "" {
			return nil
		}
	default:
		log.Warn("unknown remote transport, starting in fallback mode",
			zap.String("transport", cfg.Remote.Transport))
		return nil
	}

	invoker, err := mcptool.Connect(ctx, mcptool.Config{
		Transport:     transport,
		Command:       cfg.Remote.Command,
		URL:           cfg.Remote.URL,
		InvokeTimeout: time.Duration(cfg.Remote.InvokeTimeoutSeconds) * time.Second,
		Logger:        log,
	})
	if err != nil {
		log.Warn("remote connection failed, starting in fallback mode", zap.Error(err))
		return nil
	}
	return invoker
}

// Close destroys the adapter and releases the event sink.
func (s *Session) Close(ctx context.Context) error {
	var firstErr error
	if s.Adapter != nil {
		if err := s.Adapter.Destroy(ctx); err != nil {
			firstErr = err
		}
	}
	if s.sinkClose != nil {
		if err := s.sinkClose(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
