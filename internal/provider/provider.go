// Package provider talks to the local inference server. It only moves text:
// prompt construction and output cleanup live in the prompt and sanitize
// packages, so a fake Provider is enough to test everything above it.
package provider

import (
	"context"
	"time"
)

// GenerateRequest is a single-prompt completion request.
type GenerateRequest struct {
	Prompt string
}

// GenerateResponse is the completed model output.
type GenerateResponse struct {
	Text string
	// DoneReason is the server's stop reason, when available.
	DoneReason string
}

// EventKind tags a streamed Event.
type EventKind int

const (
	// EventFragment carries an incremental piece of model text.
	EventFragment EventKind = iota
	// EventDone carries the full accumulated text. It is the last event of a
	// successful stream.
	EventDone
	// EventError carries the failure that ended the stream.
	EventError
)

// Event is one item of a streamed generation. Exactly one EventDone or
// EventError ends every stream, after which the channel is closed.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Options are the decoding settings sent with every request.
type Options struct {
	Temperature float64
	NumPredict  int
	Stop        []string
	// KeepAlive asks the server to keep the model resident between requests.
	KeepAlive time.Duration
	// Timeout bounds each HTTP request, including reading a streamed body.
	Timeout time.Duration
}

// Provider sends prompts to an LLM backend.
type Provider interface {
	// Generate blocks until the model has produced its full output.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// Stream returns a channel of fragments ending in EventDone or EventError.
	Stream(ctx context.Context, req GenerateRequest) <-chan Event

	// Name returns the provider name (e.g., "ollama").
	Name() string

	// Available checks if this provider is ready to use.
	Available(ctx context.Context) error
}
