package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/chowdown/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config, openai.WithModel(config.CompletionModel))
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		logger: slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends one chat request in JSON mode and returns the cleaned answer.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithJSONMode())
	if err != nil {
		c.logger.Debug("completion request failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 || response.Choices[0].Content == "" {
		return "", ai.ErrEmptyResponse
	}

	return ai.CleanJSON(response.Choices[0].Content), nil
}
