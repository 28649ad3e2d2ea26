package adapter

import (
	"time"

	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/graph"
)

// UpdateFactValidity mutates the cached edge's temporal-validity window.
//
// A no-op, not an error, when temporal tracking is disabled or the edge
// is not in the cache; nothing is emitted in either case. The mutation
// never reaches the remote service: validity is the local cache's view of
// whether the fact is currently true.
func (a *Adapter) UpdateFactValidity(edgeUUID string, isValid bool, validUntil *time.Time) error {
	if a.disposed() {
		return ErrDisposed
	}
	if !a.settings.TemporalTracking {
		return nil
	}

	edge, ok := a.cache.Edge(edgeUUID)
	if !ok {
		return nil
	}

	edge.Invalid = !isValid
	edge.ValidUntil = validUntil
	a.cache.PutEdge(edge)

	a.emit(events.Event{
		Type:        events.TypeFactUpdated,
		FactUpdated: &events.FactUpdated{Edge: edge},
	})
	return nil
}

// ObserveNode and ObserveEdge record an entity the application has seen,
// making it available to fallback search, validity tracking, and sharing.
// This is the only way entities enter the cache; search results and
// writes never populate it.
func (a *Adapter) ObserveNode(n graph.Node) error {
	if a.disposed() {
		return ErrDisposed
	}
	a.cache.PutNode(n)
	return nil
}

func (a *Adapter) ObserveEdge(e graph.Edge) error {
	if a.disposed() {
		return ErrDisposed
	}
	a.cache.PutEdge(e)
	return nil
}

// ShareWithHiveMind announces cached nodes to the external collective
// layer. Unresolved uuids are dropped silently; the hivemind:share event
// fires only when at least one node resolved. No remote call is made;
// this is purely a local broadcast for event-surface consumers.
func (a *Adapter) ShareWithHiveMind(nodeUUIDs, targetSwarms []string) error {
	if a.disposed() {
		return ErrDisposed
	}

	var resolved []graph.Node
	for _, id := range nodeUUIDs {
		if n, ok := a.cache.Node(id); ok {
			resolved = append(resolved, n)
		}
	}
	if len(resolved) == 0 {
		return nil
	}

	a.emit(events.Event{
		Type: events.TypeHiveMindShare,
		HiveMindShare: &events.HiveMindShare{
			Nodes:    resolved,
			Swarms:   targetSwarms,
			SharedAt: a.now(),
		},
	})
	return nil
}
