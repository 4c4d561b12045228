// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Completer, ai.Embedder
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	completer := mock.NewMockCompleter()
//	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return `{"summary": "Cozy.", "tags": ["Casual"]}`, nil
//	}
//
//	count := completer.CallCount()
//
// # Default Behavior
//
//   - MockCompleter: Returns a fixed vibe object
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockProvider: Aggregates mock completer and embedder
package mock
