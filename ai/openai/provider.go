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


package openai

import (
	"log/slog"

	"github.com/poiesic/chowdown/ai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages completer and embedder instances.
type Provider struct {
	config    *ai.Config
	completer *Completer
	embedder  *Embedder
	logger    *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	completer, err := newCompleter(config)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		completer: completer,
		embedder:  embedder,
		logger:    slog.Default().With("component", "openai-provider"),
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

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}

func newClient(config *ai.Config, opts ...openai.Option) (*openai.LLM, error) {
	base := []openai.Option{
		openai.WithBaseURL(config.BaseURL),
		openai.WithToken(config.APIKey),
		openai.WithHTTPClient(ai.NewAttributionClient(config)),
	}
	return openai.New(append(base, opts...)...)
}
