package speech

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_HitSkipsProvider(t *testing.T) {
	inner := NewMockSynthesizer()
	cache, err := NewCache(t.TempDir(), inner)
	require.NoError(t, err)

	first, err := cache.Synthesize(context.Background(), "Hello!", "alloy", "tts-1")
	require.NoError(t, err)

	second, err := cache.Synthesize(context.Background(), "Hello!", "alloy", "tts-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, inner.Calls(), 1, "second synthesis must come from cache")
}

func TestCache_VoiceChangesKey(t *testing.T) {
	inner := NewMockSynthesizer()
	cache, err := NewCache(t.TempDir(), inner)
	require.NoError(t, err)

	_, err = cache.Synthesize(context.Background(), "Hello!", "alloy", "tts-1")
	require.NoError(t, err)
	_, err = cache.Synthesize(context.Background(), "Hello!", "nova", "tts-1")
	require.NoError(t, err)

	assert.Len(t, inner.Calls(), 2, "a different voice must not reuse cached audio")
}

func TestCache_StatsAndClear(t *testing.T) {
	inner := NewMockSynthesizer()
	cache, err := NewCache(t.TempDir(), inner)
	require.NoError(t, err)

	_, err = cache.Synthesize(context.Background(), "One.", "alloy", "tts-1")
	require.NoError(t, err)
	_, err = cache.Synthesize(context.Background(), "Two.", "alloy", "tts-1")
	require.NoError(t, err)

	files, bytes, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), files)
	assert.Positive(t, bytes)

	require.NoError(t, cache.Clear())

	files, _, err = cache.Stats()
	require.NoError(t, err)
	assert.Zero(t, files)
}

func TestCache_ProviderErrorNotCached(t *testing.T) {
	inner := NewMockSynthesizer()
	inner.Err = assert.AnError
	cache, err := NewCache(t.TempDir(), inner)
	require.NoError(t, err)

	_, err = cache.Synthesize(context.Background(), "Hello!", "alloy", "tts-1")
	assert.Error(t, err)

	files, _, statErr := cache.Stats()
	require.NoError(t, statErr)
	assert.Zero(t, files)
}
