// Package translate turns a natural-language request into a Termux command:
// it builds the prompt, calls the provider and sanitizes the model output.
package translate

import (
	"context"
	"fmt"

	"github.com/hpkotak/termuxbud/internal/prompt"
	"github.com/hpkotak/termuxbud/internal/provider"
	"github.com/hpkotak/termuxbud/internal/sanitize"
)

// EventKind tags a streamed Event.
type EventKind int

const (
	// EventFragment is a raw, unsanitized piece of model text.
	EventFragment EventKind = iota
	// EventFinal is the sanitized command built from the whole response.
	EventFinal
	// EventError ends the stream with a failure.
	EventError
)

// Event is one item of a streamed translation. Every stream ends with
// exactly one EventFinal or EventError before the channel is closed.
type Event struct {
	Kind EventKind
	Text string
	Err  error
}

// Translator binds a provider to the optional reference context.
type Translator struct {
	p            provider.Provider
	extraContext string
}

// New returns a Translator. extraContext may be empty.
func New(p provider.Provider, extraContext string) *Translator {
	return &Translator{p: p, extraContext: extraContext}
}

// Command blocks until the model answers and returns the sanitized command.
func (t *Translator) Command(ctx context.Context, request string) (string, error) {
	resp, err := t.p.Generate(ctx, t.request(request))
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	return sanitize.Command(resp.Text), nil
}

// Stream forwards raw fragments as they arrive and finishes with the
// sanitized command.
func (t *Translator) Stream(ctx context.Context, request string) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)

		for ev := range t.p.Stream(ctx, t.request(request)) {
			var next Event
			switch ev.Kind {
			case provider.EventFragment:
				next = Event{Kind: EventFragment, Text: ev.Text}
			case provider.EventDone:
				next = Event{Kind: EventFinal, Text: sanitize.Command(ev.Text)}
			case provider.EventError:
				next = Event{Kind: EventError, Err: fmt.Errorf("query failed: %w", ev.Err)}
			default:
				continue
			}

			select {
			case out <- next:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (t *Translator) request(request string) provider.GenerateRequest {
	return provider.GenerateRequest{Prompt: prompt.Build(request, t.extraContext)}
}
