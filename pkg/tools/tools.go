// Package tools defines the adapter's contract with the remote
// knowledge-graph service: an abstract tool-invocation capability.
//
// The adapter never speaks to the service's storage or query engine
// directly — everything goes through Invoke with one of the tool names
// below. Availability is decided once at construction time by the concrete
// invoker (see mcptool), not re-checked per call.
package tools

import (
	"context"
	"encoding/json"
)

// Tool names the remote service must expose.
const (
	ToolAddMemory         = "add_memory"
	ToolSearchMemoryNodes = "search_memory_nodes"
	ToolSearchMemoryFacts = "search_memory_facts"
	ToolGetEpisodes       = "get_episodes"
	ToolClearGraph        = "clear_graph"
)

// RequiredTools lists every tool the availability probe must find.
var RequiredTools = []string{
	ToolAddMemory,
	ToolSearchMemoryNodes,
	ToolSearchMemoryFacts,
	ToolGetEpisodes,
	ToolClearGraph,
}

// Invoker executes named tools against the remote service.
// Implementations must honor ctx cancellation and deadlines.
type Invoker interface {
	// Invoke calls the named tool with the given parameters and returns
	// the raw JSON result payload.
	Invoke(ctx context.Context, tool string, params map[string]any) (json.RawMessage, error)

	// Close releases the underlying connection.
	Close() error
}
