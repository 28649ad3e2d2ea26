package adapter

import (
	"context"

	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/events"
)

// Prober is the optional one-shot availability check an invoker may
// support. mcptool implements it by re-listing the server's tools.
type Prober interface {
	Probe(ctx context.Context) error
}

// Start settles the adapter's connectivity exactly once.
//
// No invoker means the capability is absent: the adapter enters fallback
// mode silently. An invoker whose probe fails also forces fallback, plus an
// error event describing the probe failure. Otherwise the adapter is
// connected and, when auto-sync is enabled, the periodic scheduler begins.
//
// Once in fallback the adapter stays degraded until destroyed and
// recreated; there is no re-probing.
func (a *Adapter) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.state == StateDestroyed {
		a.mu.Unlock()
		return ErrDisposed
	}
	if a.state != StateUninitialized {
		a.mu.Unlock()
		return nil
	}
	invoker := a.invoker
	a.mu.Unlock()

	if invoker == nil {
		a.settle(StateFallback)
		a.logger.Warn("remote capability absent, entering fallback mode")
		a.emit(events.Event{Type: events.TypeFallback})
		return nil
	}

	if prober, ok := invoker.(Prober); ok {
		if err := prober.Probe(ctx); err != nil {
			a.settle(StateFallback)
			a.logger.Warn("availability probe failed, entering fallback mode", zap.Error(err))
			a.emit(events.Event{Type: events.TypeFallback})
			a.emitError("probe", err)
			return nil
		}
	}

	a.settle(StateConnected)
	a.logger.Info("connected to knowledge graph service")
	a.emit(events.Event{Type: events.TypeConnected})

	if a.settings.AutoSync {
		a.startScheduler()
	}
	return nil
}

func (a *Adapter) settle(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Adapter) connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == StateConnected
}

func (a *Adapter) disposed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state == StateDestroyed
}
