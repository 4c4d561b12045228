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


package ai

import (
	"fmt"
	"slices"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Provider selects the implementation: "openrouter", "openai" or "gemini".
	Provider string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL is the OpenAI-compatible API root. Ignored by gemini.
	// Example: "https://openrouter.ai/api/v1"
	BaseURL string

	// CompletionModel is the model identifier used for vibe generation.
	// Example: "openai/gpt-4o-mini", "gemini-1.5-flash"
	CompletionModel string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "text-embedding-3-small", "text-embedding-004"
	EmbeddingModel string

	// EmbeddingDimensions is the expected vector length. 0 disables the check.
	EmbeddingDimensions int

	// Referer and Title are sent as HTTP-Referer and X-Title attribution
	// headers. OpenRouter uses them to identify the calling app.
	Referer string
	Title   string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the provider name.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the OpenAI-compatible API root.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithCompletionModel sets the completion model identifier.
func WithCompletionModel(model string) ConfigOption {
	return func(c *Config) {
		c.CompletionModel = model
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithEmbeddingDimensions sets the expected embedding length.
func WithEmbeddingDimensions(dimensions int) ConfigOption {
	return func(c *Config) {
		c.EmbeddingDimensions = dimensions
	}
}

// WithAttribution sets the HTTP-Referer and X-Title headers.
func WithAttribution(referer, title string) ConfigOption {
	return func(c *Config) {
		c.Referer = referer
		c.Title = title
	}
}

// DefaultConfig returns a Config for OpenRouter with the gpt-4o-mini
// completion model and 1536-dimension text-embedding-3-small vectors.
func DefaultConfig() *Config {
	return &Config{
		Provider:            ProviderOpenRouter,
		BaseURL:             "https://openrouter.ai/api/v1",
		CompletionModel:     "openai/gpt-4o-mini",
		EmbeddingModel:      "text-embedding-3-small",
		EmbeddingDimensions: 1536,
		Referer:             "http://localhost:3000",
		Title:               "Chowdown",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("OPENROUTER_API_KEY")),
//	    WithCompletionModel("openai/gpt-4o"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Provider names are lower-cased and BaseURL gets the /v1 suffix that
// OpenAI-compatible APIs expect.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/v1") {
		c.BaseURL = c.BaseURL + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if !slices.Contains(Providers, c.Provider) {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.Provider)
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Provider != ProviderGemini && c.BaseURL == "" {
		return fmt.Errorf("ai config: BaseURL is required for %s", c.Provider)
	}
	if c.CompletionModel == "" {
		return fmt.Errorf("ai config: CompletionModel is required")
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("ai config: EmbeddingModel is required")
	}
	if c.EmbeddingDimensions < 0 {
		return fmt.Errorf("ai config: EmbeddingDimensions must not be negative")
	}
	return nil
}
