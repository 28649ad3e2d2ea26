package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/graph"
	"github.com/hivemesh/strand/pkg/tools"
)

// fallbackRelevance is the confidence signal for a degraded-mode search
// that found at least one match. It is a binary-ish signal, not a ranking.
const fallbackRelevance = 0.5

// SearchOptions are the optional fields of a search call.
type SearchOptions struct {
	// GroupIDs scopes the search; empty means the configured default group.
	GroupIDs []string

	// Limit overrides the configured max nodes/facts for this call.
	Limit int

	// Entity restricts a node search to one entity type.
	Entity string

	// CenterNodeUUID biases the remote search around a node.
	CenterNodeUUID string
}

// SearchNodes finds graph nodes relevant to the query.
//
// While connected the remote search_memory_nodes tool answers and its
// relevance score passes through. A remote failure is logged and degraded
// to the local fallback search, never returned to the caller, so read
// paths cannot crash the application. In fallback mode the cache is
// searched directly: case-insensitive substring match over node names and
// observations, relevance 0.5 when anything matched, 0 otherwise.
func (a *Adapter) SearchNodes(ctx context.Context, query string, opts SearchOptions) (graph.SearchResult, error) {
	if a.disposed() {
		return graph.SearchResult{}, ErrDisposed
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = a.settings.MaxNodes
	}

	if a.connected() {
		params := map[string]any{
			"query":     query,
			"group_ids": a.groupIDs(opts.GroupIDs),
			"max_nodes": limit,
		}
		if opts.Entity != "" {
			params["entity"] = opts.Entity
		}
		if opts.CenterNodeUUID != "" {
			params["center_node_uuid"] = opts.CenterNodeUUID
		}

		result, err := a.remoteSearch(ctx, tools.ToolSearchMemoryNodes, params)
		if err == nil {
			return result, nil
		}
		a.logger.Warn("remote node search failed, falling back to cache",
			zap.String("query", query),
			zap.Error(err),
		)
	}

	nodes := a.cache.Search(query, limit)
	return graph.SearchResult{
		Nodes:          nodes,
		RelevanceScore: matchRelevance(len(nodes)),
	}, nil
}

// SearchFacts finds fact statements relevant to the query, with the same
// degradation contract as SearchNodes.
func (a *Adapter) SearchFacts(ctx context.Context, query string, opts SearchOptions) (graph.SearchResult, error) {
	if a.disposed() {
		return graph.SearchResult{}, ErrDisposed
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = a.settings.MaxFacts
	}

	if a.connected() {
		params := map[string]any{
			"query":     query,
			"group_ids": a.groupIDs(opts.GroupIDs),
			"max_facts": limit,
		}
		if opts.CenterNodeUUID != "" {
			params["center_node_uuid"] = opts.CenterNodeUUID
		}

		result, err := a.remoteSearch(ctx, tools.ToolSearchMemoryFacts, params)
		if err == nil {
			return result, nil
		}
		a.logger.Warn("remote fact search failed, falling back to cache",
			zap.String("query", query),
			zap.Error(err),
		)
	}

	facts := a.cache.Facts(query, limit)
	return graph.SearchResult{
		Facts:          facts,
		RelevanceScore: matchRelevance(len(facts)),
	}, nil
}

// remoteSearch invokes a search tool and decodes its result payload.
func (a *Adapter) remoteSearch(ctx context.Context, tool string, params map[string]any) (graph.SearchResult, error) {
	raw, err := a.invoker.Invoke(ctx, tool, params)
	if err != nil {
		return graph.SearchResult{}, err
	}

	var result graph.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return graph.SearchResult{}, fmt.Errorf("decoding %s result: %w", tool, err)
	}
	return result, nil
}

// groupIDs applies the default group when the caller gave none.
func (a *Adapter) groupIDs(ids []string) []string {
	if len(ids) > 0 {
		return ids
	}
	if a.settings.DefaultGroupID == "" {
		return nil
	}
	return []string{a.settings.DefaultGroupID}
}

func matchRelevance(matches int) float64 {
	if matches > 0 {
		return fallbackRelevance
	}
	return 0
}
