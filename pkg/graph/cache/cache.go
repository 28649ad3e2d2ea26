// Package cache provides the adapter's in-memory view of previously-seen
// graph entities.
//
// The cache is populated opportunistically: entities only arrive through
// explicit read/update paths, never automatically from search results or
// writes. It holds at most one entry per uuid: last write wins, with no
// merge policy beyond overwrite. When the remote service is unreachable the
// cache is also the corpus for degraded-mode search (see search.go).
package cache

import (
	"sync"

	"github.com/hivemesh/strand/pkg/graph"
)

// Cache maps uuids to their last-known node and edge representations.
type Cache struct {
	mu sync.RWMutex

	nodes map[string]graph.Node
	edges map[string]graph.Edge
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		nodes: make(map[string]graph.Node),
		edges: make(map[string]graph.Edge),
	}
}

// PutNode stores or overwrites the node under its uuid.
func (c *Cache) PutNode(n graph.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes[n.UUID] = n
}

// PutEdge stores or overwrites the edge under its uuid.
func (c *Cache) PutEdge(e graph.Edge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edges[e.UUID] = e
}

// Node returns the cached node for uuid, if present.
func (c *Cache) Node(uuid string) (graph.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.nodes[uuid]
	return n, ok
}

// Edge returns the cached edge for uuid, if present.
func (c *Cache) Edge(uuid string) (graph.Edge, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.edges[uuid]
	return e, ok
}

// NodeCount returns the number of cached nodes.
func (c *Cache) NodeCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.nodes)
}

// EdgeCount returns the number of cached edges.
func (c *Cache) EdgeCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.edges)
}

// Clear drops every cached node and edge.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = make(map[string]graph.Node)
	c.edges = make(map[string]graph.Edge)
}
