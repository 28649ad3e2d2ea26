package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/events"
	"github.com/hivemesh/strand/pkg/graph"
	"github.com/hivemesh/strand/pkg/tools"
)

// MemoryOptions are the optional fields of an AddMemory call.
type MemoryOptions struct {
	// GroupID scopes the episode; empty means the configured default.
	GroupID string

	// Source is text, json, or message; empty means text.
	Source string

	// SourceDescription annotates where the content came from.
	SourceDescription string
}

// AddMemory buffers one episode for ingestion and returns its uuid.
//
// The episode always lands at the tail of its group's queue first. While
// connected, an immediate delivery is also attempted; a delivery failure
// propagates to the caller, but the episode stays queued either way, so the
// next sync tick retries it. At-least-once intent: a successfully flushed
// episode is re-sent by the next tick, and the remote service is expected
// to treat episode uuids idempotently. The memory:added event fires after
// buffering regardless of delivery outcome.
func (a *Adapter) AddMemory(ctx context.Context, name, content string, opts MemoryOptions) (string, error) {
	a.mu.Lock()
	if a.state == StateDestroyed {
		a.mu.Unlock()
		return "", ErrDisposed
	}

	groupID := opts.GroupID
	if groupID == "" {
		groupID = a.settings.DefaultGroupID
	}
	source := opts.Source
	if source == "" {
		source = graph.SourceText
	}

	ep := graph.Episode{
		UUID:              a.newID(),
		Name:              name,
		Content:           content,
		Source:            source,
		SourceDescription: opts.SourceDescription,
		GroupID:           groupID,
		CreatedAt:         a.now(),
	}
	a.buffer.Enqueue(ep)
	connected := a.state == StateConnected
	a.mu.Unlock()

	var deliveryErr error
	if connected {
		deliveryErr = a.deliver(ctx, ep)
	}

	a.emit(events.Event{
		Type:        events.TypeMemoryAdded,
		MemoryAdded: &events.MemoryAdded{Episode: ep},
	})

	if deliveryErr != nil {
		return ep.UUID, fmt.Errorf("delivering episode %s: %w", ep.UUID, deliveryErr)
	}
	return ep.UUID, nil
}

// deliver sends one episode to the remote add_memory tool.
func (a *Adapter) deliver(ctx context.Context, ep graph.Episode) error {
	_, err := a.invoker.Invoke(ctx, tools.ToolAddMemory, map[string]any{
		"name":               ep.Name,
		"episode_body":       ep.Content,
		"source":             ep.Source,
		"source_description": ep.SourceDescription,
		"group_id":           ep.GroupID,
		"uuid":               ep.UUID,
	})
	return err
}

// DefaultEpisodeWindow is how many episodes GetEpisodes returns when the
// caller passes lastN <= 0.
const DefaultEpisodeWindow = 10

// GetEpisodes returns the most recent lastN episodes for the group. While
// connected it asks the remote service; in fallback mode, or when the
// remote read fails, it degrades to the locally buffered episodes, newest
// last, like every other read path.
func (a *Adapter) GetEpisodes(ctx context.Context, groupID string, lastN int) ([]graph.Episode, error) {
	if a.disposed() {
		return nil, ErrDisposed
	}
	if groupID == "" {
		groupID = a.settings.DefaultGroupID
	}
	if lastN <= 0 {
		lastN = DefaultEpisodeWindow
	}

	if a.connected() {
		raw, err := a.invoker.Invoke(ctx, tools.ToolGetEpisodes, map[string]any{
			"group_id": groupID,
			"last_n":   lastN,
		})
		if err == nil {
			var payload struct {
				Episodes []graph.Episode `json:"episodes"`
			}
			decodeErr := json.Unmarshal(raw, &payload)
			if decodeErr == nil {
				return payload.Episodes, nil
			}
			a.logger.Warn("undecodable get_episodes payload", zap.Error(decodeErr))
		} else {
			a.logger.Warn("remote episode read failed, serving buffered episodes", zap.Error(err))
		}
	}

	buffered := a.buffer.Episodes(groupID)
	if len(buffered) > lastN {
		buffered = buffered[len(buffered)-lastN:]
	}
	return buffered, nil
}
