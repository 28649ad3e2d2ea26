// Package graph defines the knowledge-graph entities the adapter caches,
// buffers, and exchanges with the remote service.
//
// Nodes are entities, edges are directed facts between two entities, and
// episodes are pending units of content awaiting ingestion. Everything is
// scoped by a group id: groups are independent namespaces with no
// cross-group invariants beyond key isolation.
package graph

import "time"

// Source values for an Episode's content payload.
const (
	SourceText    = "text"
	SourceJSON    = "json"
	SourceMessage = "message"
)

// Node is an entity in the knowledge graph. UUID is the sole identity key
// and is immutable for the adapter's lifetime.
type Node struct {
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	EntityType   string    `json:"entity_type"`
	Observations []string  `json:"observations"`
	GroupID      string    `json:"group_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Summary      string    `json:"summary,omitempty"`
}

// Edge is a directed, possibly time-bounded fact between two nodes.
// Invalid or an elapsed ValidUntil marks the fact historical, not deleted.
type Edge struct {
	UUID         string     `json:"uuid"`
	SourceUUID   string     `json:"source_node_uuid"`
	TargetUUID   string     `json:"target_node_uuid"`
	RelationType string     `json:"relation_type"`
	GroupID      string     `json:"group_id"`
	CreatedAt    time.Time  `json:"created_at"`
	Invalid      bool       `json:"invalid"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
}

// ValidNow reports whether the edge represents a currently-true fact at t.
func (e Edge) ValidNow(t time.Time) bool {
	if e.Invalid {
		return false
	}
	if e.ValidUntil != nil && !e.ValidUntil.After(t) {
		return false
	}
	return true
}

// Episode is one pending unit of knowledge to be ingested by the remote
// service. Immutable once created; its UUID is assigned at creation and
// never reused.
type Episode struct {
	UUID              string    `json:"uuid"`
	Name              string    `json:"name"`
	Content           string    `json:"content"`
	Source            string    `json:"source"`
	SourceDescription string    `json:"source_description,omitempty"`
	GroupID           string    `json:"group_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// SearchResult is the transient result of a node or fact search. The
// relevance score is a confidence signal in [0,1], not a ranking.
type SearchResult struct {
	Nodes          []Node   `json:"nodes,omitempty"`
	Edges          []Edge   `json:"edges,omitempty"`
	Facts          []string `json:"facts,omitempty"`
	RelevanceScore float64  `json:"relevance_score"`
}
