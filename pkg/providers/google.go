package providers

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient answers completions through the Google AI API.
type GeminiClient struct {
	client *genai.Client
}

// Gemini builds a GeminiClient, falling back to GEMINI_API_KEY from the
// environment.
func Gemini(ctx context.Context, opts ...ClientOption) (*GeminiClient, error) {
	params := &Params{}
	for _, opt := range opts {
		opt(params)
	}

	apiKey := params.APIKey
	if apiKey == "" {
		apiKey = envOr("GEMINI_API_KEY", "")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGoogleAI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, model string, prompt string) (string, error) {
	parts := []*genai.Part{
		{Text: prompt},
	}
	result, err := c.client.Models.GenerateContent(ctx, model, []*genai.Content{{Parts: parts}}, nil)
	if err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion from model %s", model)
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
