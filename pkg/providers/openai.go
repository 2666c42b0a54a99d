package providers

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient answers completions through the OpenAI chat API or any
// compatible endpoint reachable at the configured base URL.
type OpenAIClient struct {
	client *openai.Client
}

// OpenAI builds an OpenAIClient, falling back to OPENAI_API_BASE_URL and
// OPENAI_API_KEY from the environment.
func OpenAI(opts ...ClientOption) *OpenAIClient {
	params := &Params{}
	for _, opt := range opts {
		opt(params)
	}

	if params.BaseURL == "" {
		params.BaseURL = envOr("OPENAI_API_BASE_URL", "https://api.openai.com/v1/")
	}
	if params.APIKey == "" {
		params.APIKey = envOr("OPENAI_API_KEY", "")
	}

	clientOpts := []option.RequestOption{option.WithBaseURL(params.BaseURL)}
	if params.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(params.APIKey))
	}

	return &OpenAIClient{
		client: openai.NewClient(clientOpts...),
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, model string, prompt string) (string, error) {
	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model: openai.F(model),
	})
	if err != nil {
		return "", err
	}
	return chatCompletion.Choices[0].Message.Content, nil
}
