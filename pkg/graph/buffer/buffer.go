// Package buffer provides the per-group episode write buffer.
//
// Episodes enqueue in strict FIFO order within a group; across groups no
// ordering is guaranteed. Queues are created lazily on first enqueue and
// never duplicated. The buffer is the single owner of its queues: the only
// way to read a queue for delivery is Drain, which atomically snapshots and
// resets it under the lock, so an episode enqueued while a drained batch is
// in flight lands in a fresh queue and survives to the next drain. Episodes
// whose delivery fails after a drain are not requeued; that loss is part
// of the sync contract (see adapter.syncOnce).
package buffer

import (
	"sync"

	"github.com/hivemesh/strand/pkg/graph"
)

// Buffer holds pending episodes grouped by their group id.
type Buffer struct {
	mu     sync.Mutex
	queues map[string][]graph.Episode
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{
		queues: make(map[string][]graph.Episode),
	}
}

// Enqueue appends the episode to the tail of its group's queue, creating
// the queue if this is the group's first episode.
func (b *Buffer) Enqueue(ep graph.Episode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queues[ep.GroupID] = append(b.queues[ep.GroupID], ep)
}

// Drain atomically removes and returns the group's queued episodes in
// insertion order. Returns nil when the group has no queue or it is empty.
func (b *Buffer) Drain(groupID string) []graph.Episode {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.queues[groupID]
	if len(queue) == 0 {
		return nil
	}
	delete(b.queues, groupID)
	return queue
}

// Groups returns the ids of every group with at least one queued episode.
func (b *Buffer) Groups() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups := make([]string, 0, len(b.queues))
	for g, queue := range b.queues {
		if len(queue) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// Len returns the number of episodes queued for the group.
func (b *Buffer) Len(groupID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues[groupID])
}

// Total returns the number of buffered-but-undelivered episodes across all
// groups.
func (b *Buffer) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, queue := range b.queues {
		total += len(queue)
	}
	return total
}

// Episodes returns a copy of the group's queue without draining it, newest
// last. Used by degraded-mode episode reads.
func (b *Buffer) Episodes(groupID string) []graph.Episode {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.queues[groupID]
	if len(queue) == 0 {
		return nil
	}
	out := make([]graph.Episode, len(queue))
	copy(out, queue)
	return out
}

// Clear drops every queue.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queues = make(map[string][]graph.Episode)
}
