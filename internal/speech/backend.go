package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// BackendSynthesizer asks the tutoring backend to synthesize speech. The
// backend fronts a hosted TTS model, so generation can take a while; the
// request carries a generous timeout.
type BackendSynthesizer struct {
	baseURL    string
	httpClient *http.Client
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Model string `json:"model"`
}

// Options lists the voices and models the backend offers.
type Options struct {
	Voices []string `json:"voices"`
	Models []string `json:"models"`
}

// DefaultOptions is used when the backend cannot be reached.
func DefaultOptions() Options {
	return Options{
		Voices: []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"},
		Models: []string{"tts-1", "tts-1-hd"},
	}
}

func NewBackendSynthesizer(baseURL string) *BackendSynthesizer {
	return &BackendSynthesizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *BackendSynthesizer) Synthesize(ctx context.Context, text, voice, model string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required for synthesis")
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, Voice: voice, Model: model})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/text-to-speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("backend returned empty audio")
	}
	return audio, nil
}

// TTSOptions fetches the available voices and models, falling back to the
// defaults when the backend is unreachable.
func (b *BackendSynthesizer) TTSOptions(ctx context.Context) Options {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/tts-options", nil)
	if err != nil {
		return DefaultOptions()
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Debug("tts-options unavailable, using defaults")
		return DefaultOptions()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return DefaultOptions()
	}

	var opts Options
	if err := json.NewDecoder(resp.Body).Decode(&opts); err != nil {
		logrus.WithError(err).Debug("failed to decode tts-options")
		return DefaultOptions()
	}
	if len(opts.Voices) == 0 {
		opts.Voices = DefaultOptions().Voices
	}
	if len(opts.Models) == 0 {
		opts.Models = DefaultOptions().Models
	}
	return opts
}

func (b *BackendSynthesizer) Close() error {
	b.httpClient.CloseIdleConnections()
	return nil
}
