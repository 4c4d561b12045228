package mock

import (
	"context"
	"sync"
)

// DefaultAnswer is returned by MockCompleter when no CompleteFunc is set.
const DefaultAnswer = `{"summary": "A friendly neighborhood spot.", "tags": ["Casual", "Local Favorite"]}`

// MockCompleter is a test double for ai.Completer.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	mu          sync.Mutex
	callCount   int
	userPrompts []string
}

// NewMockCompleter creates a mock completer with default behavior.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the prompt and delegates to CompleteFunc.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.userPrompts = append(m.userPrompts, userPrompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return DefaultAnswer, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// UserPrompts returns every user prompt received, in call order.
func (m *MockCompleter) UserPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.userPrompts...)
}

// Reset clears the call history and custom behavior.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.userPrompts = nil
	m.CompleteFunc = nil
}
