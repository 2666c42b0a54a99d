// Package providers wraps LLM completion backends behind one small interface
// so the LLM-backed catalog does not care which vendor answers.
package providers

import (
	"context"
	"os"
)

// CompletionClient is the only capability the catalogs need from an LLM.
type CompletionClient interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}

// Params configures a backend client.
type Params struct {
	BaseURL string
	APIKey  string
}

// ClientOption configures backend construction.
type ClientOption func(*Params)

func WithBaseURL(baseURL string) ClientOption {
	return func(p *Params) {
		p.BaseURL = baseURL
	}
}

func WithAPIKey(apiKey string) ClientOption {
	return func(p *Params) {
		p.APIKey = apiKey
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
