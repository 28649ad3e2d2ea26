package adapter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/tools"
)

// Statistics is a pure snapshot of the adapter's local state.
type Statistics struct {
	NodeCount      int  `json:"node_count"`
	EdgeCount      int  `json:"edge_count"`
	QueuedEpisodes int  `json:"queued_episodes"`
	CacheSize      int  `json:"cache_size"`
	IsConnected    bool `json:"is_connected"`
}

// Statistics reports cache sizes, the total buffered-but-undelivered
// episode count across all groups, and connectivity. No side effects.
func (a *Adapter) Statistics() Statistics {
	nodes := a.cache.NodeCount()
	edges := a.cache.EdgeCount()
	return Statistics{
		NodeCount:      nodes,
		EdgeCount:      edges,
		QueuedEpisodes: a.buffer.Total(),
		CacheSize:      nodes + edges,
		IsConnected:    a.connected(),
	}
}

// ClearGraph wipes the remote graph and the local cache and buffer.
//
// This is the one operation whose remote failure surfaces to the caller:
// silently reporting success on a failed clear would be misleading. The
// local cache and buffer are cleared, and graph:cleared emitted, whether
// or not the remote call succeeded.
func (a *Adapter) ClearGraph(ctx context.Context) error {
	if a.disposed() {
		return ErrDisposed
	}

	var remoteErr error
	if a.connected() {
		if _, err := a.invoker.Invoke(ctx, tools.ToolClearGraph, map[string]any{}); err != nil {
			remoteErr = fmt.Errorf("remote clear failed: %w", err)
		}
	}

	a.cache.Clear()
	a.buffer.Clear()
	a.emit(events.Event{Type: events.TypeGraphCleared})

	return remoteErr
}

// Destroy is the single teardown path: it cancels the sync scheduler, runs
// one final best-effort sync pass, clears the cache and buffer, marks the
// adapter disconnected, emits destroyed, and closes the invoker.
// Idempotent; every operation after Destroy returns ErrDisposed.
func (a *Adapter) Destroy(ctx context.Context) error {
	var closeErr error
	a.destroyOnce.Do(func() {
		a.stopScheduler()

		if a.connected() {
			a.syncOnce(ctx)
		}

		a.cache.Clear()
		a.buffer.Clear()
		a.settle(StateDestroyed)

		a.emit(events.Event{Type: events.TypeDestroyed})
		a.logger.Info("adapter destroyed")

		if a.invoker != nil {
			if err := a.invoker.Close(); err != nil {
				a.logger.Warn("closing invoker", zap.Error(err))
				closeErr = err
			}
		}
	})
	return closeErr
}
