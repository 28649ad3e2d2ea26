package adapter

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/events"
)

// startScheduler launches the periodic sync loop. Caller must have settled
// the adapter into the connected state first.
func (a *Adapter) startScheduler() {
	a.mu.Lock()
	if a.schedStop != nil {
		a.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	a.schedStop = stop
	a.schedDone = done
	a.mu.Unlock()

	go a.runScheduler(stop, done)
}

// stopScheduler cancels the ticker and waits for the loop to exit. Safe to
// call when the scheduler never started.
func (a *Adapter) stopScheduler() {
	a.mu.Lock()
	stop := a.schedStop
	done := a.schedDone
	a.schedStop = nil
	a.schedDone = nil
	a.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (a *Adapter) runScheduler(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.settings.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.syncOnce(context.Background())
		}
	}
}

// syncOnce drains every group's queue and delivers the drained episodes in
// FIFO order.
//
// The drain is an atomic snapshot-and-reset: episodes enqueued while a
// batch is in flight land in a fresh queue and survive to the next tick.
// Episodes whose delivery fails are logged and discarded, not requeued:
// best-effort semantics, so the buffer can never grow unbounded against a
// dead remote. The sync:completed event fires after every tick, successful
// or not.
func (a *Adapter) syncOnce(ctx context.Context) {
	delivered, failed := 0, 0

	for _, group := range a.buffer.Groups() {
		episodes := a.buffer.Drain(group)
		for _, ep := range episodes {
			if err := a.deliver(ctx, ep); err != nil {
				failed++
				a.logger.Warn("episode delivery failed, discarding",
					zap.String("group_id", group),
					zap.String("episode_uuid", ep.UUID),
					zap.Error(err),
				)
				continue
			}
			delivered++
		}
	}

	if delivered > 0 || failed > 0 {
		a.logger.Debug("sync pass finished",
			zap.Int("delivered", delivered),
			zap.Int("failed", failed),
		)
	}

	a.emit(events.Event{
		Type: events.TypeSyncCompleted,
		SyncCompleted: &events.SyncCompleted{
			CompletedAt: a.now(),
			Delivered:   delivered,
			Failed:      failed,
		},
	})
}
