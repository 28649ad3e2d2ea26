package tools

import "errors"

// ErrUnavailable indicates the remote capability could not be confirmed at
// construction time.
var ErrUnavailable = errors.New("remote tool capability unavailable")

// ErrInvokeTimeout indicates a tool call exceeded the configured per-call
// timeout.
var ErrInvokeTimeout = errors.New("remote tool call timed out")

// ErrToolFailed indicates the remote tool executed but reported an error
// result.
var ErrToolFailed = errors.New("remote tool reported an error")
