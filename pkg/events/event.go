// Package events provides the adapter's consumer-observable event surface.
//
// Events are fire-and-forget: the bus dispatches to every subscriber
// synchronously, expects no acknowledgement, and discards nothing a
// subscriber does. Payloads are transport-neutral so a sink (see kafkasink)
// can forward them to an external consumer verbatim.
package events

import (
	"time"

	"github.com/hivemesh/strand/pkg/graph"
)

// SchemaVersionV1 is the first version of the event payload schema.
const SchemaVersionV1 = 1

// Event types emitted by the adapter.
const (
	TypeConnected     = "connected"
	TypeFallback      = "fallback"
	TypeError         = "error"
	TypeMemoryAdded   = "memory:added"
	TypeFactUpdated   = "fact:updated"
	TypeHiveMindShare = "hivemind:share"
	TypeGraphCleared  = "graph:cleared"
	TypeSyncCompleted = "sync:completed"
	TypeDestroyed     = "destroyed"
)

// Event is one adapter notification. Exactly one payload field is set,
// matching Type; lifecycle events (connected, fallback, graph:cleared,
// destroyed) carry no payload beyond the envelope.
type Event struct {
	SchemaVersion int       `json:"schema_version"`
	Type          string    `json:"event_type"`
	ID            string    `json:"event_id"`
	EmittedAt     time.Time `json:"emitted_at"`

	MemoryAdded   *MemoryAdded   `json:"memory_added,omitempty"`
	FactUpdated   *FactUpdated   `json:"fact_updated,omitempty"`
	HiveMindShare *HiveMindShare `json:"hivemind_share,omitempty"`
	SyncCompleted *SyncCompleted `json:"sync_completed,omitempty"`
	Error         *ErrorDetail   `json:"error,omitempty"`
}

// MemoryAdded carries the full episode record after buffering, regardless
// of immediate-delivery outcome.
type MemoryAdded struct {
	Episode graph.Episode `json:"episode"`
}

// FactUpdated carries the cached edge after a temporal-validity mutation.
type FactUpdated struct {
	Edge graph.Edge `json:"edge"`
}

// HiveMindShare announces cached nodes to the external collective layer.
type HiveMindShare struct {
	Nodes    []graph.Node `json:"nodes"`
	Swarms   []string     `json:"swarms"`
	SharedAt time.Time    `json:"shared_at"`
}

// SyncCompleted reports one scheduler tick, successful or not.
type SyncCompleted struct {
	CompletedAt time.Time `json:"completed_at"`
	Delivered   int       `json:"delivered"`
	Failed      int       `json:"failed"`
}

// ErrorDetail describes a non-fatal adapter failure.
type ErrorDetail struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}
