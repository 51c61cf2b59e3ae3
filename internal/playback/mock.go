package playback

import (
	"context"
	"sync"
)

// MockPlayer pretends to play audio instantly. Used by tests and by the
// mock engine so the app runs without an audio device.
type MockPlayer struct {
	mu      sync.Mutex
	played  int
	rates   []float64
	stopped int

	// Err, when set, is returned by every Play call.
	Err error
}

func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

func (m *MockPlayer) Play(ctx context.Context, audio []byte, rate float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.played++
	m.rates = append(m.rates, rate)
	return nil
}

func (m *MockPlayer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped++
}

// Played reports how many clips were played.
func (m *MockPlayer) Played() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played
}

// Rates returns the playback rate of each played clip.
func (m *MockPlayer) Rates() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.rates...)
}

// Stopped reports how many times Stop was called.
func (m *MockPlayer) Stopped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
