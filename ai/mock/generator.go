package mock

import (
	"context"
	"sync"

	"github.com/ironleaf/docmind/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
// Safe for concurrent use; generation calls may arrive from worker pools.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default behavior returning an empty JSON object.
	GenerateFunc func(ctx context.Context, system, user string, tier ai.ModelTier) (*ai.GenerationResult, error)

	mu        sync.Mutex
	callCount int
}

// NewMockGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns a fixed empty JSON object with deterministic token counts.
// Token counts are derived from prompt lengths so stats assertions stay stable.
func (m *MockGenerator) Generate(ctx context.Context, system, user string, tier ai.ModelTier) (*ai.GenerationResult, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, user, tier)
	}

	return &ai.GenerationResult{
		Text:      "{}",
		Model:     "mock-" + tier.String(),
		TokensIn:  (len(system) + len(user)) / 4,
		TokensOut: 1,
	}, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.GenerateFunc = nil
}
