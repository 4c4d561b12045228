package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicVector(t *testing.T) {
	a := DeterministicVector("Cafe Racer", 16)
	b := DeterministicVector("Cafe Racer", 16)
	c := DeterministicVector("Aladdin Falafel", 16)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)

	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestMockProvider(t *testing.T) {
	ctx := context.Background()
	p := NewMockProvider()

	answer, err := p.Completer().Complete(ctx, "system", "user")
	require.NoError(t, err)
	assert.Equal(t, DefaultAnswer, answer)
	assert.Equal(t, []string{"user"}, p.GetMockCompleter().UserPrompts())

	vec, err := p.Embedder().EmbedText(ctx, "text")
	require.NoError(t, err)
	assert.Len(t, vec, DefaultDimensions)
	assert.Equal(t, 1, p.GetMockEmbedder().CallCount())

	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}
