// Package mcptool implements tools.Invoker over the official MCP Go SDK.
//
// The invoker connects to one MCP server via stdio or streamable-HTTP
// transport, lists its tools exactly once at construction, and requires
// every tool in tools.RequiredTools to be present; that single listing is
// the adapter's availability probe. There is no reconnection after
// construction; a dead session degrades every subsequent call.
//
// Every invocation runs under a per-call timeout so a hung remote server
// stalls one call, not the process.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hivemesh/strand/pkg/tools"
	"github.com/hivemesh/strand/pkg/utils"
)

// Transport selects how the invoker reaches the MCP server.
type Transport string

const (
	// TransportStdio launches the server as a subprocess and speaks MCP
	// over its stdin/stdout.
	TransportStdio Transport = "stdio"

	// TransportHTTP connects to a streamable-HTTP MCP endpoint.
	TransportHTTP Transport = "http"
)

// DefaultInvokeTimeout bounds each tool call unless Config overrides it.
const DefaultInvokeTimeout = 30 * time.Second

// Config holds the connection settings for an MCP invoker.
type Config struct {
	// Transport is stdio or http.
	Transport Transport

	// Command is the server launch command for stdio transport, split on
	// spaces into executable + args.
	Command string

	// URL is the endpoint for http transport.
	URL string

	// InvokeTimeout bounds each tool call. Zero means DefaultInvokeTimeout.
	InvokeTimeout time.Duration

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

// Invoker is a tools.Invoker backed by a single MCP client session.
type Invoker struct {
	session *mcpsdk.ClientSession
	timeout time.Duration
	logger  *zap.Logger
}

var _ tools.Invoker = (*Invoker)(nil)

// Connect establishes the MCP session and runs the one-shot availability
// probe. A connection or listing failure, or a missing required tool,
// returns an error wrapping tools.ErrUnavailable so callers can distinguish
// "service absent" from config mistakes.
func Connect(ctx context.Context, cfg Config) (*Invoker, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	var transport mcpsdk.Transport
	switch cfg.Transport {
	case TransportStdio:
		executable, args := splitCommand(cfg.Command)
		if executable == "" {
			return nil, errors.New("stdio transport requires a non-empty command")
		}
		transport = &mcpsdk.CommandTransport{Command: exec.CommandContext(ctx, executable, args...)}

	case TransportHTTP:
		if cfg.URL == "" {
			return nil, errors.New("http transport requires a non-empty url")
		}
		transport = &mcpsdk.StreamableClientTransport{Endpoint: cfg.URL}

	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}

	client := mcpsdk.NewClient(
		&mcpsdk.Implementation{Name: "strand", Version: utils.Version},
		nil,
	)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting: %w", tools.ErrUnavailable, err)
	}

	if err := probe(ctx, session); err != nil {
		_ = session.Close()
		return nil, err
	}

	timeout := cfg.InvokeTimeout
	if timeout <= 0 {
		timeout = DefaultInvokeTimeout
	}

	return &Invoker{
		session: session,
		timeout: timeout,
		logger:  cfg.Logger,
	}, nil
}

// probe lists the server's tools and verifies every required graph tool is
// registered.
func probe(ctx context.Context, session *mcpsdk.ClientSession) error {
	available := make(map[string]bool)
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			return fmt.Errorf("%w: listing tools: %w", tools.ErrUnavailable, err)
		}
		available[tool.Name] = true
	}

	for _, name := range tools.RequiredTools {
		if !available[name] {
			return fmt.Errorf("%w: server does not expose %q", tools.ErrUnavailable, name)
		}
	}
	return nil
}

// Probe re-runs the availability check against the live session. The
// adapter calls this exactly once at startup.
func (i *Invoker) Probe(ctx context.Context) error {
	return probe(ctx, i.session)
}

// Invoke calls the named tool under the per-call timeout and returns the
// result payload as raw JSON. Structured content is preferred; otherwise
// the concatenated text content is returned as-is.
func (i *Invoker) Invoke(ctx context.Context, tool string, params map[string]any) (json.RawMessage, error) {
	callCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	result, err := i.session.CallTool(callCtx, &mcpsdk.CallToolParams{
		Name:      tool,
		Arguments: params,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s after %s", tools.ErrInvokeTimeout, tool, i.timeout)
		}
		return nil, fmt.Errorf("calling %s: %w", tool, err)
	}

	if result.IsError {
		return nil, fmt.Errorf("%w: %s: %s", tools.ErrToolFailed, tool, textContent(result))
	}

	if result.StructuredContent != nil {
		payload, err := json.Marshal(result.StructuredContent)
		if err != nil {
			return nil, fmt.Errorf("encoding %s result: %w", tool, err)
		}
		return payload, nil
	}

	return json.RawMessage(textContent(result)), nil
}

// Close shuts down the MCP session.
func (i *Invoker) Close() error {
	return i.session.Close()
}

// textContent concatenates every text block in the result.
func textContent(result *mcpsdk.CallToolResult) string {
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcpsdk.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

// splitCommand splits a launch command on spaces into executable + args.
func splitCommand(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
