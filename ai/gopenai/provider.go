// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gopenai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poiesic/chowdown/ai"
	"github.com/poiesic/chowdown/retry"
	openai "github.com/sashabaranov/go-openai"
)

// Provider implements ai.Provider on a single go-openai client.
type Provider struct {
	client    *openai.Client
	config    *ai.Config
	completer *Completer
	embedder  *Embedder
	logger    *slog.Logger
}

// NewProvider validates config and builds the completer and embedder.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL
	clientConfig.HTTPClient = ai.NewAttributionClient(config)
	client := openai.NewClientWithConfig(clientConfig)

	return &Provider{
		client: client,
		config: config,
		completer: &Completer{
			client: client,
			model:  config.CompletionModel,
			logger: slog.Default().With("component", "gopenai-completer"),
		},
		embedder: &Embedder{
			client:     client,
			model:      openai.EmbeddingModel(config.EmbeddingModel),
			dimensions: config.EmbeddingDimensions,
			logger:     slog.Default().With("component", "gopenai-embedder"),
		},
		logger: slog.Default().With("component", "gopenai-provider"),
	}, nil
}

// Completer returns the structured completion service.
func (p *Provider) Completer() ai.Completer {
	return p.completer
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op; the HTTP client holds no resources of its own.
func (p *Provider) Close() error {
	p.logger.Debug("closing go-openai provider")
	return nil
}

// classify marks client errors that will fail again on retry.
func classify(err error) error {
	if err == nil {
		return nil
	}
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return retry.Permanent(err)
	}
	return err
}

// Completer implements ai.Completer with chat completions in JSON mode.
type Completer struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// Complete sends one chat completion request.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Debug("chat completion failed", "model", c.model, "err", err)
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ai.ErrEmptyResponse
	}
	return ai.CleanJSON(resp.Choices[0].Message.Content), nil
}

// Embedder implements ai.Embedder with the embeddings endpoint.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	logger     *slog.Logger
}

// EmbedText embeds a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		e.logger.Debug("embedding request failed", "model", e.model, "err", err)
		return nil, classify(err)
	}
	if len(resp.Data) == 0 {
		return nil, ai.ErrEmptyResponse
	}
	vector := resp.Data[0].Embedding
	if err := ai.CheckDimensions(vector, e.dimensions); err != nil {
		return nil, err
	}
	return vector, nil
}
