package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync"
)

// DefaultDimensions is the vector length produced by NewMockEmbedder.
const DefaultDimensions = 8

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// Dimensions is the length of default vectors.
	Dimensions int

	mu        sync.Mutex
	callCount int
	texts     []string
}

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{Dimensions: DefaultDimensions}
}

// EmbedText generates a deterministic embedding based on text hash.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.callCount++
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return DeterministicVector(text, m.Dimensions), nil
}

// CallCount returns the number of times EmbedText was called.
func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Texts returns every text embedded, in call order.
func (m *MockEmbedder) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

// Reset clears the call history and custom behavior.
func (m *MockEmbedder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.texts = nil
	m.EmbedTextFunc = nil
}

// DeterministicVector creates a unit vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
