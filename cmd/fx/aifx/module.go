package aifx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/chowdown/ai"
	"github.com/poiesic/chowdown/ai/gemini"
	"github.com/poiesic/chowdown/ai/gopenai"
	"github.com/poiesic/chowdown/ai/openai"
	"github.com/poiesic/chowdown/config"
	"go.uber.org/fx"
)

var Module = fx.Provide(
	ProvideProvider,
	ProvideCompleter,
	ProvideEmbedder)

// ProvideProvider builds the generative-text provider selected by
// AI_PROVIDER and closes it when the app stops.
func ProvideProvider(lc fx.Lifecycle, cfg *config.Config) (ai.Provider, error) {
	aiCfg := cfg.AI()
	if err := aiCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	slog.Info("initializing AI provider",
		"provider", aiCfg.Provider,
		"completion_model", aiCfg.CompletionModel,
		"embedding_model", aiCfg.EmbeddingModel)

	var (
		provider ai.Provider
		err      error
	)
	switch aiCfg.Provider {
	case ai.ProviderOpenRouter:
		provider, err = openai.NewProvider(aiCfg)
	case ai.ProviderOpenAI:
		provider, err = gopenai.NewProvider(aiCfg)
	case ai.ProviderGemini:
		provider, err = gemini.NewProvider(context.Background(), aiCfg)
	default:
		err = fmt.Errorf("%w: %q", ai.ErrUnsupportedProvider, aiCfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", aiCfg.Provider, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return provider.Close()
		},
	})
	return provider, nil
}

func ProvideCompleter(provider ai.Provider) ai.Completer {
	return provider.Completer()
}

func ProvideEmbedder(provider ai.Provider) ai.Embedder {
	return provider.Embedder()
}
