package cache

import (
	"fmt"
	"strings"

	"github.com/hivemesh/strand/pkg/graph"
)

// Search runs the degraded-mode node query: a case-insensitive substring
// match of query against each node's name and each of its observations.
// A node matching on either field is included exactly once. Results come
// back in cache-iteration order, truncated to limit (<=0 means no cap).
func (c *Cache) Search(query string, limit int) []graph.Node {
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []graph.Node
	for _, n := range c.nodes {
		if limit > 0 && len(matches) >= limit {
			break
		}
		if nodeMatches(n, q) {
			matches = append(matches, n)
		}
	}
	return matches
}

// Facts runs the degraded-mode fact query over cached edges. Each matching
// edge is rendered as a "source relation target" statement. Matching is the
// same case-insensitive substring rule used for nodes, applied to the
// rendered statement.
func (c *Cache) Facts(query string, limit int) []string {
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var facts []string
	for _, e := range c.edges {
		if limit > 0 && len(facts) >= limit {
			break
		}
		stmt := renderFact(e, c.nodes)
		if strings.Contains(strings.ToLower(stmt), q) {
			facts = append(facts, stmt)
		}
	}
	return facts
}

func nodeMatches(n graph.Node, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(n.Name), loweredQuery) {
		return true
	}
	for _, obs := range n.Observations {
		if strings.Contains(strings.ToLower(obs), loweredQuery) {
			return true
		}
	}
	return false
}

// renderFact prefers cached node names over raw uuids when available.
func renderFact(e graph.Edge, nodes map[string]graph.Node) string {
	source := e.SourceUUID
	if n, ok := nodes[e.SourceUUID]; ok {
		source = n.Name
	}
	target := e.TargetUUID
	if n, ok := nodes[e.TargetUUID]; ok {
		target = n.Name
	}
	return fmt.Sprintf("%s %s %s", source, e.RelationType, target)
}
