package provider

import (
	"fmt"
	"strings"
	"time"
)

// BuildConfig contains provider runtime settings used by the factory.
type BuildConfig struct {
	Host       string
	Model      string
	KeepAlive  time.Duration
	NumPredict int
	Timeout    time.Duration
	Stop       []string
}

// NewFromConfig builds an Ollama provider with deterministic decoding:
// temperature zero, a bounded token budget and the given stop sequences.
func NewFromConfig(cfg BuildConfig) (*OllamaProvider, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("model cannot be empty")
	}
	if cfg.NumPredict <= 0 {
		return nil, fmt.Errorf("num_predict must be positive, got %d", cfg.NumPredict)
	}

	return NewOllama(cfg.Host, cfg.Model, Options{
		Temperature: 0,
		NumPredict:  cfg.NumPredict,
		Stop:        cfg.Stop,
		KeepAlive:   cfg.KeepAlive,
		Timeout:     cfg.Timeout,
	})
}
