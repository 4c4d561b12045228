package gopenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/chowdown/ai"
	"github.com/poiesic/chowdown/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, dims int) ai.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ai.NewConfig(
		ai.WithProvider(ai.ProviderOpenAI),
		ai.WithAPIKey("test-key"),
		ai.WithBaseURL(server.URL),
		ai.WithCompletionModel("gpt-4o-mini"),
		ai.WithEmbeddingDimensions(dims),
	)
	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	return provider
}

func TestComplete(t *testing.T) {
	var body map[string]any
	var referer string
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		referer = r.Header.Get("HTTP-Referer")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"` +
			"```json\\n{\\\"summary\\\": \\\"Cozy.\\\", \\\"tags\\\": [\\\"Quiet\\\"]}\\n```" + `"}}]}`))
	}, 0)

	content, err := provider.Completer().Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary": "Cozy.", "tags": ["Quiet"]}`, content)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
	assert.Equal(t, "http://localhost:3000", referer)
}

func TestComplete_EmptyChoices(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}, 0)

	_, err := provider.Completer().Complete(context.Background(), "system", "user")
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestComplete_UnauthorizedIsPermanent(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
	}, 0)

	_, err := provider.Completer().Complete(context.Background(), "system", "user")
	require.Error(t, err)
	assert.True(t, retry.IsPermanent(err))
}

func TestComplete_ServerErrorIsRetryable(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}, 0)

	_, err := provider.Completer().Complete(context.Background(), "system", "user")
	require.Error(t, err)
	assert.False(t, retry.IsPermanent(err))
}

func TestEmbedText(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,0.25,0.125]}]}`))
	}, 3)

	vector, err := provider.Embedder().EmbedText(context.Background(), "Cafe: Cozy. Quiet")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.25, 0.125}, vector)
}

func TestEmbedText_DimensionMismatch(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,0.25]}]}`))
	}, 3)

	_, err := provider.Embedder().EmbedText(context.Background(), "text")
	assert.ErrorIs(t, err, ai.ErrDimensionMismatch)
}
