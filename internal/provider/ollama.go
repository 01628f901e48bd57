package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements Provider using a local Ollama instance. The HTTP
// client, and with it the connection pool, is reused across calls.
type OllamaProvider struct {
	base   *url.URL
	http   *http.Client
	client *api.Client
	model  string
	opts   Options
}

// NewOllama creates an OllamaProvider connected to the given host and model.
func NewOllama(host, model string, opts Options) (*OllamaProvider, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parsing ollama host URL: %w", err)
	}
	httpClient := &http.Client{Timeout: opts.Timeout}
	return &OllamaProvider{
		base:   base,
		http:   httpClient,
		client: api.NewClient(base, httpClient),
		model:  model,
		opts:   opts,
	}, nil
}

func (o *OllamaProvider) Name() string { return "ollama" }

// Model returns the default model identifier.
func (o *OllamaProvider) Model() string { return o.model }

// Available checks if Ollama is reachable and the configured model exists.
func (o *OllamaProvider) Available(ctx context.Context) error {
	models, err := o.client.List(ctx)
	if err != nil {
		return fmt.Errorf("cannot reach Ollama at configured host: %w", err)
	}

	for _, m := range models.Models {
		if m.Name == o.model || m.Name == o.model+":latest" {
			return nil
		}
	}
	return fmt.Errorf("model %q not found in Ollama", o.model)
}

// Generate sends the prompt with streaming disabled and returns the response
// text as produced by the model.
func (o *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	var final api.GenerateResponse
	err := o.client.Generate(ctx, o.generateRequest(req, false), func(resp api.GenerateResponse) error {
		final = resp
		return nil
	})
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("ollama generate: %w", err)
	}

	return GenerateResponse{
		Text:       strings.TrimSpace(final.Response),
		DoneReason: final.DoneReason,
	}, nil
}

func (o *OllamaProvider) generateRequest(req GenerateRequest, stream bool) *api.GenerateRequest {
	return &api.GenerateRequest{
		Model:     o.model,
		Prompt:    req.Prompt,
		Stream:    &stream,
		KeepAlive: &api.Duration{Duration: o.opts.KeepAlive},
		Options: map[string]any{
			"temperature": o.opts.Temperature,
			"num_predict": o.opts.NumPredict,
			"stop":        o.opts.Stop,
		},
	}
}
