package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when no completion credential is configured.
// Callers map it to a client-visible error response rather than crashing.
var ErrMissingAPIKey = errors.New("completion API key is not configured")

// CompletionClient is the single entry point to the external language model.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type openAIClient struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIClient builds a completion client with a fixed model id. baseURL
// overrides the provider endpoint (used by tests and self-hosted gateways).
// Sampling temperature is left at the provider default.
func NewOpenAIClient(apiKey, baseURL string) CompletionClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &openAIClient{
		apiKey: apiKey,
		model:  openai.GPT4oMini,
		client: openai.NewClientWithConfig(config),
	}
}

func (c *openAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
