// Package speech provides the synthesis providers that turn the teacher's
// words into audio.
package speech

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config for synthesizer construction. Voice and model are chosen per
// Synthesize call, not fixed here.
type Config struct {
	Type       string
	BackendURL string
}

// Synthesizer converts a piece of text into playable audio. Voice and model
// are selected per call; network and provider errors surface uniformly as
// wrapped errors.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, model string) ([]byte, error)
	Close() error
}

type ProviderType string

const (
	ProviderMock    ProviderType = "mock"
	ProviderBackend ProviderType = "backend"
	ProviderGoogle  ProviderType = "google"
	ProviderStream  ProviderType = "stream"
	ProviderAuto    ProviderType = "auto" // pick the best available
)

func (p ProviderType) String() string {
	return string(p)
}

// NewSynthesizer creates a synthesizer for the configured provider. Providers
// are wrapped in the on-disk audio cache when tts.cache_path is set.
func NewSynthesizer(config Config) (Synthesizer, error) {
	if config.Type == ProviderAuto.String() {
		config.Type = bestProvider().String()
	}

	var (
		synth Synthesizer
		err   error
	)
	switch config.Type {
	case ProviderMock.String():
		synth = NewMockSynthesizer()

	case ProviderBackend.String():
		synth = NewBackendSynthesizer(config.BackendURL)

	case ProviderGoogle.String():
		synth, err = newGoogleSynthesizer()

	case ProviderStream.String():
		synth = NewStreamSynthesizer(viper.GetString("backend.stream_url"))

	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if cachePath := viper.GetString("tts.cache_path"); cachePath != "" && config.Type != ProviderMock.String() {
		return NewCache(cachePath, synth)
	}
	return synth, nil
}

func bestProvider() ProviderType {
	if hasGoogleCredentials() {
		return ProviderGoogle
	}
	return ProviderBackend
}

// AvailableProviders returns the providers usable in this environment.
func AvailableProviders() []ProviderType {
	providers := []ProviderType{ProviderMock, ProviderBackend, ProviderStream}
	if hasGoogleCredentials() {
		providers = append(providers, ProviderGoogle)
	}
	return providers
}

func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
