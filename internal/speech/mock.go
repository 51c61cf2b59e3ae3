package speech

import (
	"context"
	"sync"
)

// MockSynthesizer - placeholder provider returning deterministic bytes.
type MockSynthesizer struct {
	mu    sync.Mutex
	calls []string

	// Err, when set, is returned by every Synthesize call.
	Err error
}

func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text, voice, model string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	m.calls = append(m.calls, text)
	return []byte("audio:" + text), nil
}

// Calls returns the texts synthesized so far.
func (m *MockSynthesizer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockSynthesizer) Close() error {
	return nil
}
