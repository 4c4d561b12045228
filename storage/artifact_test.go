package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/chowdown/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadJSONArray(t *testing.T) {
	path := writeFile(t, `[{"place_id": "p1"}, 42, "text", null, [1], {"place_id": "p2"}]`)

	items, err := ReadJSONArray(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.JSONEq(t, `{"place_id": "p1"}`, string(items[0]))
	assert.JSONEq(t, `{"place_id": "p2"}`, string(items[1]))
}

func TestReadJSONArray_Empty(t *testing.T) {
	items, err := ReadJSONArray(writeFile(t, `[]`))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadJSONArray_Missing(t *testing.T) {
	_, err := ReadJSONArray(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestReadJSONArray_NotAnArray(t *testing.T) {
	for _, content := range []string{`{"a": 1}`, `null`, `"text"`, `not json`} {
		t.Run(content, func(t *testing.T) {
			_, err := ReadJSONArray(writeFile(t, content))
			assert.ErrorIs(t, err, ErrInvalidArtifact)
		})
	}
}

func TestWriteJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "enriched_places.json")
	places := []core.EnrichedPlace{
		{ID: "p1", Name: "Café & Bar", ReviewsSummary: "Cozy.", Tags: []string{"Casual"}, Embedding: []float32{0.5}},
	}

	require.NoError(t, WriteJSONArray(path, places))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Café & Bar", "no HTML or unicode escaping")
	assert.Contains(t, string(data), "\n  {", "indented output")

	items, err := ReadJSONArray(path)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestWriteJSONArray_Nil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw_places.json")
	require.NoError(t, WriteJSONArray[core.RawPlace](path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestWriteJSONArray_Replaces(t *testing.T) {
	path := writeFile(t, `[{"old": true}, {"old": true}]`)
	require.NoError(t, WriteJSONArray(path, []map[string]int{{"new": 1}}))

	items, err := ReadJSONArray(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, `{"new": 1}`, string(items[0]))
}
