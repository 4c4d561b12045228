// Package openai implements the ai interfaces with langchaingo against any
// OpenAI-compatible host. OpenRouter is the default host.
//
// # Basic Usage
//
//	cfg := ai.NewConfig(ai.WithAPIKey(key))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	answer, err := provider.Completer().Complete(ctx, system, user)
//
// Completion requests ask for JSON mode. Embedding vectors are checked
// against cfg.EmbeddingDimensions.
package openai
