package events

import "sync"

// Bus is a synchronous, multi-subscriber dispatcher. Publish calls every
// subscriber in registration order on the publishing goroutine; subscribers
// return nothing and cannot veto or acknowledge an event.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
	order  []int
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]func(Event)),
	}
}

// Subscribe registers fn for every subsequent event and returns an
// unsubscribe func. Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; !ok {
			return
		}
		delete(b.subs, id)
		for i, oid := range b.order {
			if oid == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish dispatches the event to every current subscriber. After Close it
// is a no-op.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	fns := make([]func(Event), 0, len(b.subs))
	for _, id := range b.order {
		if fn, ok := b.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Close stops all future dispatch. Subscriptions remain registered but are
// never called again.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
