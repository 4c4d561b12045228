package refine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/chowdown/ai/mock"
	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/retry"
	"github.com/poiesic/chowdown/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return p
}

func rawPlace(id, name string) core.RawPlace {
	return core.RawPlace{
		PlaceID:          id,
		Name:             name,
		FormattedAddress: "1 Main St, Seattle",
		Reviews:          json.RawMessage(`[{"text":"Great noodles"},{"text":"Loud but fun"}]`),
		EditorialSummary: json.RawMessage(`{"overview":"Hand-pulled noodles."}`),
	}
}

func TestRun_SkipsPlaceThatExhaustsRetries(t *testing.T) {
	places := make([]core.RawPlace, 10)
	for i := range places {
		places[i] = rawPlace(fmt.Sprintf("p%d", i+1), fmt.Sprintf("Place %d", i+1))
	}

	completer := mock.NewMockCompleter()
	failedAttempts := 0
	completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		if strings.Contains(userPrompt, "Name: Place 7\n") {
			failedAttempts++
			return "", errors.New("upstream unavailable")
		}
		return mock.DefaultAnswer, nil
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := New(completer, mock.NewMockEmbedder(), WithPolicy(instantPolicy()), WithLogger(logger))
	result := r.Run(context.Background(), places)

	assert.Len(t, result.Places, 9)
	assert.Equal(t, retry.DefaultMaxAttempts, failedAttempts)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "p7", result.Failures[0].PlaceID)
	assert.Contains(t, logs.String(), "Place 7")

	for _, place := range result.Places {
		assert.NotEqual(t, "p7", place.ID)
	}
}

func TestRefine_BuildsEnrichedPlace(t *testing.T) {
	completer := mock.NewMockCompleter()
	embedder := mock.NewMockEmbedder()
	r := New(completer, embedder, WithPolicy(instantPolicy()))

	place := rawPlace("p1", "  Noodle House ")
	place.PriceLevel = new(int)
	*place.PriceLevel = 2

	enriched, err := r.Refine(context.Background(), &place)
	require.NoError(t, err)

	assert.Equal(t, "p1", enriched.ID)
	assert.Equal(t, "Noodle House", enriched.Name)
	assert.Equal(t, "1 Main St, Seattle", enriched.Address)
	assert.Equal(t, 2, *enriched.PriceLevel)
	assert.Nil(t, enriched.Rating)
	assert.Equal(t, "A friendly neighborhood spot.", enriched.ReviewsSummary)
	assert.Equal(t, []string{"Casual", "Local Favorite"}, enriched.Tags)
	assert.Len(t, enriched.Embedding, mock.DefaultDimensions)

	require.Len(t, embedder.Texts(), 1)
	assert.Equal(t, "Noodle House: A friendly neighborhood spot. Casual, Local Favorite", embedder.Texts()[0])
}

func TestRefine_PromptContent(t *testing.T) {
	completer := mock.NewMockCompleter()
	var system string
	completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		system = systemPrompt
		return mock.DefaultAnswer, nil
	}
	r := New(completer, mock.NewMockEmbedder(), WithPolicy(instantPolicy()))

	place := rawPlace("p1", "Noodle House")
	_, err := r.Refine(context.Background(), &place)
	require.NoError(t, err)

	assert.Equal(t, SystemPrompt, system)
	prompt := completer.UserPrompts()[0]
	assert.Contains(t, prompt, "Name: Noodle House")
	assert.Contains(t, prompt, "Editorial Summary: Hand-pulled noodles.")
	assert.Contains(t, prompt, "1. Great noodles\n2. Loud but fun")
}

func TestRefine_NoReviewsNoEditorial(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return `{"summary": "", "tags": null}`, nil
	}
	r := New(completer, mock.NewMockEmbedder(), WithPolicy(instantPolicy()))

	place := core.RawPlace{PlaceID: "p1"}
	enriched, err := r.Refine(context.Background(), &place)
	require.NoError(t, err)

	prompt := completer.UserPrompts()[0]
	assert.Contains(t, prompt, "Name: Unknown Place")
	assert.Contains(t, prompt, "Editorial Summary: N/A")
	assert.Contains(t, prompt, "Top Reviews:\nN/A")

	assert.Equal(t, core.DefaultSummary, enriched.ReviewsSummary)
	assert.Equal(t, core.DefaultTags(), enriched.Tags)
}

func TestRefine_TruncatesTags(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return `{"summary": "Busy.", "tags": ["a", "b", "c", "d", "e", "f", "g"]}`, nil
	}
	r := New(completer, mock.NewMockEmbedder(), WithPolicy(instantPolicy()))

	place := rawPlace("p1", "Busy Spot")
	enriched, err := r.Refine(context.Background(), &place)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, enriched.Tags)
}

func TestRefine_RetriesMalformedAnswer(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		if completer.CallCount() < 3 {
			return "not json at all", nil
		}
		return mock.DefaultAnswer, nil
	}
	r := New(completer, mock.NewMockEmbedder(), WithPolicy(instantPolicy()))

	place := rawPlace("p1", "Flaky")
	enriched, err := r.Refine(context.Background(), &place)
	require.NoError(t, err)
	assert.Equal(t, 3, completer.CallCount())
	assert.Equal(t, "A friendly neighborhood spot.", enriched.ReviewsSummary)
}

func TestRefine_EmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("quota exceeded")
	}
	r := New(mock.NewMockCompleter(), embedder, WithPolicy(instantPolicy()))

	place := rawPlace("p1", "No Vector")
	_, err := r.Refine(context.Background(), &place)
	require.Error(t, err)
	assert.Equal(t, retry.DefaultMaxAttempts, embedder.CallCount())
}

func TestRefine_PermanentErrorIsNotRetried(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return "", retry.Permanent(errors.New("unauthorized"))
	}
	r := New(completer, mock.NewMockEmbedder(), WithPolicy(instantPolicy()))

	place := rawPlace("p1", "Locked")
	_, err := r.Refine(context.Background(), &place)
	require.Error(t, err)
	assert.Equal(t, 1, completer.CallCount())
}

func TestRun_UsesEnrichmentCache(t *testing.T) {
	cache, _, err := badger.NewMemoryCache(time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	completer := mock.NewMockCompleter()
	embedder := mock.NewMockEmbedder()
	places := []core.RawPlace{rawPlace("p1", "One"), rawPlace("p2", "Two")}

	first := New(completer, embedder, WithPolicy(instantPolicy()), WithCache(cache, "model-a"))
	result := first.Run(context.Background(), places)
	require.Len(t, result.Places, 2)
	assert.Equal(t, 0, result.CacheHits)
	assert.Equal(t, 2, completer.CallCount())

	second := New(completer, embedder, WithPolicy(instantPolicy()), WithCache(cache, "model-a"))
	result = second.Run(context.Background(), places)
	require.Len(t, result.Places, 2)
	assert.Equal(t, 2, result.CacheHits)
	assert.Equal(t, 2, completer.CallCount())
	assert.Equal(t, "p2", result.Places[1].ID)

	other := New(completer, embedder, WithPolicy(instantPolicy()), WithCache(cache, "model-b"))
	result = other.Run(context.Background(), places)
	assert.Equal(t, 0, result.CacheHits)
	assert.Equal(t, 4, completer.CallCount())
}

func TestRun_Empty(t *testing.T) {
	r := New(mock.NewMockCompleter(), mock.NewMockEmbedder())
	result := r.Run(context.Background(), nil)
	assert.Empty(t, result.Places)
	assert.Empty(t, result.Failures)
}
