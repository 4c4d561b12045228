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


// Package config reads process configuration from the environment.
//
// Values come from environment variables, optionally seeded from a dotenv
// file. Variables already set in the environment win over the file. Each
// stage checks only the secrets it needs.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/chowdown/ai"
	"github.com/poiesic/chowdown/ai/gemini"
	"github.com/poiesic/chowdown/storage/postgres"
)

const (
	DefaultEnvFile         = ".env.local"
	DefaultDataDir         = "data"
	DefaultTable           = "places"
	DefaultCacheTTL        = 24 * time.Hour
	DefaultOpenAIBaseURL   = "https://api.openai.com/v1"
	DefaultOpenAICompModel = "gpt-4o-mini"

	RawArtifact      = "raw_places.json"
	EnrichedArtifact = "enriched_places.json"
)

// DefaultConflictColumns identify a place row for upserts.
var DefaultConflictColumns = []string{"name", "address"}

var (
	// ErrMissingSecret reports a required variable that is unset or blank.
	ErrMissingSecret = errors.New("missing required configuration")

	// ErrInvalidValue reports a variable that cannot be parsed.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the resolved process configuration.
type Config struct {
	PlacesAPIKey string

	AIProvider            string
	AIAPIKey              string
	AIBaseURL             string
	AICompletionModel     string
	AIEmbeddingModel      string
	AIEmbeddingDimensions int

	DatastoreURL             string
	DatastoreServiceKey      string
	DatastoreTable           string
	DatastoreConflictColumns []string
	DatastoreAutoMigrate     bool

	DataDir  string
	CacheDir string
	CacheTTL time.Duration
	LogLevel slog.Level
}

// Load seeds the environment from ENV_FILE (default .env.local) when that
// file exists, then reads the configuration.
func Load() (*Config, error) {
	envFile := envString("ENV_FILE", DefaultEnvFile)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the current environment.
func FromEnv() (*Config, error) {
	defaults := ai.DefaultConfig()
	cfg := &Config{
		PlacesAPIKey: envString("PLACES_API_KEY", ""),

		AIProvider:        strings.ToLower(envString("AI_PROVIDER", defaults.Provider)),
		AIBaseURL:         envString("AI_BASE_URL", ""),
		AICompletionModel: envString("AI_COMPLETION_MODEL", ""),
		AIEmbeddingModel:  envString("AI_EMBEDDING_MODEL", ""),

		DatastoreURL:             envString("DATASTORE_URL", ""),
		DatastoreServiceKey:      envString("DATASTORE_SERVICE_KEY", ""),
		DatastoreTable:           envString("DATASTORE_TABLE", DefaultTable),
		DatastoreConflictColumns: envList("DATASTORE_CONFLICT_COLUMNS", DefaultConflictColumns),

		DataDir:  envString("DATA_DIR", DefaultDataDir),
		CacheDir: envString("CACHE_DIR", ""),
	}

	cfg.AIAPIKey = aiAPIKey(cfg.AIProvider)

	var err error
	if cfg.AIEmbeddingDimensions, err = envInt("AI_EMBEDDING_DIMENSIONS", -1); err != nil {
		return nil, err
	}
	if cfg.DatastoreAutoMigrate, err = envBool("DATASTORE_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = envDuration("CACHE_TTL", DefaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = envLevel("LOG_LEVEL", slog.LevelInfo); err != nil {
		return nil, err
	}
	cfg.applyProviderDefaults(defaults)
	return cfg, nil
}

// applyProviderDefaults fills model settings left unset with the defaults
// of the selected provider.
func (c *Config) applyProviderDefaults(defaults *ai.Config) {
	base, completion, embedding, dims := defaults.BaseURL, defaults.CompletionModel, defaults.EmbeddingModel, defaults.EmbeddingDimensions
	switch c.AIProvider {
	case ai.ProviderOpenAI:
		base, completion = DefaultOpenAIBaseURL, DefaultOpenAICompModel
	case ai.ProviderGemini:
		base = ""
		completion = gemini.DefaultCompletionModel
		embedding = gemini.DefaultEmbeddingModel
		dims = gemini.DefaultEmbeddingDimensions
	}
	if c.AIBaseURL == "" {
		c.AIBaseURL = base
	}
	if c.AICompletionModel == "" {
		c.AICompletionModel = completion
	}
	if c.AIEmbeddingModel == "" {
		c.AIEmbeddingModel = embedding
	}
	if c.AIEmbeddingDimensions < 0 {
		c.AIEmbeddingDimensions = dims
	}
}

// RequireHarvest checks the secrets of the harvest stage.
func (c *Config) RequireHarvest() error {
	return requireEnv("PLACES_API_KEY", c.PlacesAPIKey)
}

// RequireRefine checks the secrets of the refine stage.
func (c *Config) RequireRefine() error {
	if c.AIAPIKey == "" {
		return fmt.Errorf("%w: OPENROUTER_API_KEY (or AI_API_KEY) environment variable is required", ErrMissingSecret)
	}
	return nil
}

// RequireUpload checks the secrets of the upload stage.
func (c *Config) RequireUpload() error {
	if err := requireEnv("DATASTORE_URL", c.DatastoreURL); err != nil {
		return err
	}
	return requireEnv("DATASTORE_SERVICE_KEY", c.DatastoreServiceKey)
}

// AI returns the provider configuration for the refine stage.
func (c *Config) AI() *ai.Config {
	return ai.NewConfig(
		ai.WithProvider(c.AIProvider),
		ai.WithAPIKey(c.AIAPIKey),
		ai.WithBaseURL(c.AIBaseURL),
		ai.WithCompletionModel(c.AICompletionModel),
		ai.WithEmbeddingModel(c.AIEmbeddingModel),
		ai.WithEmbeddingDimensions(c.AIEmbeddingDimensions),
	)
}

// Datastore returns the datastore configuration for the upload stage.
func (c *Config) Datastore() postgres.Config {
	return postgres.Config{
		URL:                 c.DatastoreURL,
		ServiceKey:          c.DatastoreServiceKey,
		Table:               c.DatastoreTable,
		ConflictColumns:     c.DatastoreConflictColumns,
		EmbeddingDimensions: c.AIEmbeddingDimensions,
	}
}

// RawPath is the harvest artifact location.
func (c *Config) RawPath() string {
	return filepath.Join(c.DataDir, RawArtifact)
}

// EnrichedPath is the refine artifact location.
func (c *Config) EnrichedPath() string {
	return filepath.Join(c.DataDir, EnrichedArtifact)
}

// CacheEnabled reports whether a response cache directory is configured.
func (c *Config) CacheEnabled() bool {
	return c.CacheDir != ""
}

// CacheSalt identifies the models whose answers are cached.
func (c *Config) CacheSalt() string {
	return strings.Join([]string{
		c.AIProvider, c.AICompletionModel, c.AIEmbeddingModel, strconv.Itoa(c.AIEmbeddingDimensions),
	}, "|")
}

// aiAPIKey picks the provider key. OPENROUTER_API_KEY only takes precedence
// for openrouter so its key is never sent to another vendor.
func aiAPIKey(provider string) string {
	if provider == "openrouter" {
		return envString("OPENROUTER_API_KEY", envString("AI_API_KEY", ""))
	}
	return envString("AI_API_KEY", envString("OPENROUTER_API_KEY", ""))
}

func requireEnv(key, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s environment variable is required", ErrMissingSecret, key)
	}
	return nil
}
