package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ollama/ollama/api"
)

// maxStreamLine bounds a single NDJSON line from the server.
const maxStreamLine = 512 * 1024

// streamChunk is the subset of a streamed /api/generate line we consume.
type streamChunk struct {
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason"`
	Error      string `json:"error"`
}

// Stream posts the prompt with streaming enabled. The ollama client aborts a
// stream on the first line it cannot decode; this reader skips such lines
// instead, so the request is issued directly with the api request type.
func (o *OllamaProvider) Stream(ctx context.Context, req GenerateRequest) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		text, err := o.stream(ctx, req, func(fragment string) bool {
			return send(ctx, events, Event{Kind: EventFragment, Text: fragment})
		})
		if err != nil {
			send(ctx, events, Event{Kind: EventError, Err: err})
			return
		}
		send(ctx, events, Event{Kind: EventDone, Text: text})
	}()

	return events
}

// send delivers ev unless ctx is done first.
func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (o *OllamaProvider) stream(ctx context.Context, req GenerateRequest, onFragment func(string) bool) (string, error) {
	body, err := json.Marshal(o.generateRequest(req, true))
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base.JoinPath("api/generate").String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/x-ndjson")

	resp, err := o.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama stream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("ollama stream: %w", statusError(resp))
	}

	var text strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk streamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}
		if chunk.Error != "" {
			return "", fmt.Errorf("ollama stream: %s", chunk.Error)
		}
		if chunk.Response != "" {
			text.WriteString(chunk.Response)
			if !onFragment(chunk.Response) {
				return "", ctx.Err()
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading ollama stream: %w", err)
	}

	return strings.TrimSpace(text.String()), nil
}

// statusError converts a non-2xx response into the ollama client's error type.
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}

	return api.StatusError{
		StatusCode:   resp.StatusCode,
		Status:       resp.Status,
		ErrorMessage: msg,
	}
}
