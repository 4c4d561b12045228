package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *CheckpointRepository) {
	t.Helper()
	cache, checkpoints, err := NewMemoryCache(ttl)
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache, checkpoints
}

func TestCache_Detail(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Hour)

	got, err := cache.LoadDetail(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got, "miss")

	rating := 4.2
	place := &core.RawPlace{PlaceID: "p1", Name: "Cafe Racer", Rating: &rating}
	require.NoError(t, cache.SaveDetail(ctx, place))

	got, err = cache.LoadDetail(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cafe Racer", got.Name)
	assert.Equal(t, 4.2, *got.Rating)
}

func TestCache_DetailRejectsMissingID(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	err := cache.SaveDetail(context.Background(), &core.RawPlace{Name: "Nameless"})
	assert.ErrorIs(t, err, core.ErrMissingPlaceID)
}

func TestCache_Enrichment(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, 0)

	enrichment := &storage.Enrichment{
		Vibe:      core.Vibe{Summary: "Cozy.", Tags: []string{"Casual"}},
		Embedding: []float32{0.1, 0.2},
	}
	require.NoError(t, cache.SaveEnrichment(ctx, "abc", enrichment))

	got, err := cache.LoadEnrichment(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, enrichment, got)

	got, err = cache.LoadEnrichment(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_NamespacesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, 0)

	require.NoError(t, cache.SaveDetail(ctx, &core.RawPlace{PlaceID: "same"}))

	got, err := cache.LoadEnrichment(ctx, "same")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Second)

	require.NoError(t, cache.SaveDetail(ctx, &core.RawPlace{PlaceID: "p1"}))

	got, err := cache.LoadDetail(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Badger TTLs have one second granularity.
	time.Sleep(2100 * time.Millisecond)

	got, err = cache.LoadDetail(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckpointRepository(t *testing.T) {
	ctx := context.Background()
	_, checkpoints := newTestCache(t, time.Millisecond)

	got, err := checkpoints.LoadCheckpoint(ctx, "harvest")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Stage:     "harvest",
		RunID:     "run-1",
		Processed: 42,
	}))

	got, err = checkpoints.LoadCheckpoint(ctx, "harvest")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 42, got.Processed)
	assert.False(t, got.UpdatedAt.IsZero())

	other, err := checkpoints.LoadCheckpoint(ctx, "refine")
	require.NoError(t, err)
	assert.Nil(t, other)
}
