// Package adapter mediates between a local application's memory subsystem
// and a remote knowledge-graph service reachable through tool invocation.
//
// The adapter buffers writes so callers never block on the remote service,
// reconciles the buffer on a periodic schedule, keeps a local cache of
// previously-seen entities for fast reads and degraded-mode search, and
// layers temporal-validity and collective-sharing operations on top of
// that cache.
//
// Connectivity is decided exactly once, at Start: the availability probe
// either confirms the remote capability (connected) or the adapter runs
// degraded against its cache (fallback) until it is destroyed and
// recreated. There is no re-probing and no reconnection.
package adapter

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/graph/buffer"
	"github.com/hivemesh/strand/pkg/graph/cache"
	"github.com/hivemesh/strand/pkg/tools"
)

// State is the adapter's connectivity state.
type State int

const (
	StateUninitialized State = iota
	StateConnected
	StateFallback
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnected:
		return "connected"
	case StateFallback:
		return "fallback"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Settings are the adapter's validated runtime options.
type Settings struct {
	// DefaultGroupID scopes writes and searches when the caller gives no
	// group.
	DefaultGroupID string

	// MaxNodes and MaxFacts are advisory result caps passed to the remote
	// search tools and applied to fallback search. They never trigger
	// local eviction.
	MaxNodes int
	MaxFacts int

	// AutoSync enables the periodic buffer drain while connected.
	AutoSync bool

	// SyncInterval is the scheduler tick period. Zero means 30s.
	SyncInterval time.Duration

	// TemporalTracking enables UpdateFactValidity; when false that
	// operation is a silent no-op.
	TemporalTracking bool
}

// DefaultSyncInterval is the scheduler period when Settings leaves it zero.
const DefaultSyncInterval = 30 * time.Second

// Config assembles an Adapter's collaborators.
type Config struct {
	Settings Settings

	// Invoker reaches the remote service. Nil means the capability is
	// absent and the adapter starts in fallback mode.
	Invoker tools.Invoker

	// Bus receives every adapter event.
	Bus *events.Bus

	// Logger is the configured zap logger.
	Logger *zap.Logger

	// IDFunc generates episode and event ids. Defaults to uuid.NewString.
	IDFunc func() string

	// Clock supplies timestamps. Defaults to time.Now.
	Clock func() time.Time
}

// Adapter is the facade over the cache, write buffer, sync scheduler, and
// remote capability. One mutex serializes all state, cache, and buffer
// mutations; remote calls happen outside the lock.
type Adapter struct {
	settings Settings
	invoker  tools.Invoker
	bus      *events.Bus
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time

	cache  *cache.Cache
	buffer *buffer.Buffer

	mu    sync.Mutex
	state State

	schedStop   chan struct{}
	schedDone   chan struct{}
	destroyOnce sync.Once
}

// New creates an Adapter in the uninitialized state. Call Start to run the
// availability probe and settle connectivity.
func New(cfg Config) (*Adapter, error) {
	if cfg.Bus == nil {
		return nil, errNilBus
	}
	if cfg.Logger == nil {
		return nil, errNilLogger
	}

	newID := cfg.IDFunc
	if newID == nil {
		newID = uuid.NewString
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	settings := cfg.Settings
	if settings.SyncInterval <= 0 {
		settings.SyncInterval = DefaultSyncInterval
	}

	return &Adapter{
		settings: settings,
		invoker:  cfg.Invoker,
		bus:      cfg.Bus,
		logger:   cfg.Logger,
		newID:    newID,
		now:      now,
		cache:    cache.New(),
		buffer:   buffer.New(),
		state:    StateUninitialized,
	}, nil
}

// State returns the current connectivity state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// emit publishes an event envelope with the given type and payload already
// filled in by the caller.
func (a *Adapter) emit(ev events.Event) {
	ev.SchemaVersion = events.SchemaVersionV1
	ev.ID = a.newID()
	ev.EmittedAt = a.now()
	a.bus.Publish(ev)
}

// emitError publishes an error event for a non-fatal failure.
func (a *Adapter) emitError(stage string, err error) {
	a.emit(events.Event{
		Type:  events.TypeError,
		Error: &events.ErrorDetail{Stage: stage, Message: err.Error()},
	})
}
