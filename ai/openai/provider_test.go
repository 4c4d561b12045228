package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/chowdown/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type openRouterStub struct {
	server   *httptest.Server
	requests []map[string]any
	headers  []http.Header
	vector   []float32
}

func newOpenRouterStub(t *testing.T, vector []float32) *openRouterStub {
	t.Helper()
	stub := &openRouterStub{vector: vector}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		stub.requests = append(stub.requests, body)
		stub.headers = append(stub.headers, r.Header.Clone())

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/chat/completions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "cmpl-1",
				"choices": []map[string]any{{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": "```json\n{\"summary\": \"Lively.\", \"tags\": [\"Loud\"]}\n```",
					},
				}},
			})
		case "/v1/embeddings":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"data":   []map[string]any{{"object": "embedding", "index": 0, "embedding": stub.vector}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func newTestConfig(url string, dims int) *ai.Config {
	return ai.NewConfig(
		ai.WithAPIKey("router-key"),
		ai.WithBaseURL(url),
		ai.WithEmbeddingDimensions(dims),
	)
}

func TestProvider_Complete(t *testing.T) {
	stub := newOpenRouterStub(t, nil)
	provider, err := NewProvider(newTestConfig(stub.server.URL, 0))
	require.NoError(t, err)
	defer provider.Close()

	content, err := provider.Completer().Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary": "Lively.", "tags": ["Loud"]}`, content)

	require.Len(t, stub.requests, 1)
	assert.Equal(t, "openai/gpt-4o-mini", stub.requests[0]["model"])
	assert.Equal(t, "Bearer router-key", stub.headers[0].Get("Authorization"))
	assert.Equal(t, "http://localhost:3000", stub.headers[0].Get("HTTP-Referer"))
	assert.Equal(t, "Chowdown", stub.headers[0].Get("X-Title"))
}

func TestProvider_EmbedText(t *testing.T) {
	stub := newOpenRouterStub(t, []float32{0.25, 0.5, 0.75})
	provider, err := NewProvider(newTestConfig(stub.server.URL, 3))
	require.NoError(t, err)

	vector, err := provider.Embedder().EmbedText(context.Background(), "Bar: Lively.\nLoud")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 0.5, 0.75}, vector)

	require.Len(t, stub.requests, 1)
	assert.Equal(t, "text-embedding-3-small", stub.requests[0]["model"])
}

func TestProvider_EmbedTextDimensionMismatch(t *testing.T) {
	stub := newOpenRouterStub(t, []float32{0.25, 0.5})
	provider, err := NewProvider(newTestConfig(stub.server.URL, 3))
	require.NoError(t, err)

	_, err = provider.Embedder().EmbedText(context.Background(), "text")
	assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(ai.NewConfig())
	assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
}
