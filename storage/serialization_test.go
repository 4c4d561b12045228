package storage

import (
	"testing"
	"time"

	"github.com/poiesic/chowdown/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalRawPlace(t *testing.T) {
	rating := 4.5
	place := &core.RawPlace{
		PlaceID:          "p1",
		Name:             "Cafe Racer",
		Rating:           &rating,
		Reviews:          []byte(`[{"text":"Great."}]`),
		EditorialSummary: []byte(`"Quirky."`),
	}

	data, err := MarshalRawPlace(place)
	require.NoError(t, err)

	got, err := UnmarshalRawPlace(data)
	require.NoError(t, err)
	assert.Equal(t, place.PlaceID, got.PlaceID)
	assert.Equal(t, *place.Rating, *got.Rating)
	assert.Equal(t, "Quirky.", got.EditorialText())
	assert.Equal(t, []string{"Great."}, got.ReviewTexts(3))
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	checkpoint := &core.Checkpoint{
		Stage:     "refine",
		RunID:     "run-1",
		Processed: 9,
		Failed:    1,
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalCheckpoint(checkpoint)
	require.NoError(t, err)

	got, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, checkpoint, got)
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := UnmarshalRawPlace([]byte("not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalEnrichment([]byte("{"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalCheckpoint(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
