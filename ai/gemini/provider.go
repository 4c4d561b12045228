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


// Package gemini implements the ai interfaces on Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/poiesic/chowdown/ai"
	"google.golang.org/api/option"
)

// Default models used when the configuration leaves them unset.
const (
	DefaultCompletionModel     = "gemini-1.5-flash"
	DefaultEmbeddingModel      = "text-embedding-004"
	DefaultEmbeddingDimensions = 768
)

// Provider implements ai.Provider with one genai client shared by the
// completer and embedder.
type Provider struct {
	client    *genai.Client
	completer *Completer
	embedder  *Embedder
	logger    *slog.Logger
}

// NewProvider opens a genai client with the configured API key.
func NewProvider(ctx context.Context, config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(config.CompletionModel)
	model.ResponseMIMEType = "application/json"

	return &Provider{
		client: client,
		completer: &Completer{
			model:  model,
			logger: slog.Default().With("component", "gemini-completer"),
		},
		embedder: &Embedder{
			model:      client.EmbeddingModel(config.EmbeddingModel),
			dimensions: config.EmbeddingDimensions,
			logger:     slog.Default().With("component", "gemini-embedder"),
		},
		logger: slog.Default().With("component", "gemini-provider"),
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

// Close releases the underlying gRPC connection.
func (p *Provider) Close() error {
	p.logger.Debug("closing gemini provider")
	return p.client.Close()
}

// Completer implements ai.Completer with a JSON-typed generative model.
type Completer struct {
	model  *genai.GenerativeModel
	logger *slog.Logger
}

// Complete sends the user prompt with the system prompt as system
// instruction. GenerativeModel is not safe for concurrent reconfiguration,
// so callers share one Completer sequentially.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	resp, err := c.model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		c.logger.Debug("generate content failed", "err", err)
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ai.ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ai.ErrEmptyResponse
	}
	return ai.CleanJSON(sb.String()), nil
}

// Embedder implements ai.Embedder with a Gemini embedding model.
type Embedder struct {
	model      *genai.EmbeddingModel
	dimensions int
	logger     *slog.Logger
}

// EmbedText embeds a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		e.logger.Debug("embed content failed", "err", err)
		return nil, err
	}
	if resp.Embedding == nil {
		return nil, ai.ErrEmptyResponse
	}
	if err := ai.CheckDimensions(resp.Embedding.Values, e.dimensions); err != nil {
		return nil, err
	}
	return resp.Embedding.Values, nil
}
