package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableProviders(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	providers := AvailableProviders()

	assert.Contains(t, providers, ProviderMock)
	assert.Contains(t, providers, ProviderBackend)
	assert.Contains(t, providers, ProviderStream)
	assert.Contains(t, providers, ProviderGoogle, "credentials env var is set")
}

func TestNewSynthesizer_Mock(t *testing.T) {
	synth, err := NewSynthesizer(Config{Type: ProviderMock.String()})
	require.NoError(t, err)
	defer synth.Close()

	_, ok := synth.(*MockSynthesizer)
	assert.True(t, ok)
}

func TestNewSynthesizer_UnknownProvider(t *testing.T) {
	_, err := NewSynthesizer(Config{Type: "gramophone"})
	assert.Error(t, err)
}
