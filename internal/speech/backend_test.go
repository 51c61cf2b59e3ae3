package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendSynthesize_Success(t *testing.T) {
	var gotReq synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/text-to-speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	b := NewBackendSynthesizer(server.URL)
	audio, err := b.Synthesize(context.Background(), "Hello there!", "alloy", "tts-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "Hello there!", gotReq.Text)
	assert.Equal(t, "alloy", gotReq.Voice)
	assert.Equal(t, "tts-1", gotReq.Model)
}

func TestBackendSynthesize_EmptyText(t *testing.T) {
	b := NewBackendSynthesizer("http://localhost:0")
	_, err := b.Synthesize(context.Background(), "   ", "alloy", "tts-1")
	assert.Error(t, err)
}

func TestBackendSynthesize_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "synthesis quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	b := NewBackendSynthesizer(server.URL)
	_, err := b.Synthesize(context.Background(), "Hello", "alloy", "tts-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
	assert.Contains(t, err.Error(), "synthesis quota exceeded")
}

func TestBackendSynthesize_EmptyAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	b := NewBackendSynthesizer(server.URL)
	_, err := b.Synthesize(context.Background(), "Hello", "alloy", "tts-1")
	assert.Error(t, err)
}

func TestTTSOptions_FromBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tts-options", r.URL.Path)
		json.NewEncoder(w).Encode(Options{
			Voices: []string{"owl", "sparrow"},
			Models: []string{"tts-2"},
		})
	}))
	defer server.Close()

	b := NewBackendSynthesizer(server.URL)
	opts := b.TTSOptions(context.Background())

	assert.Equal(t, []string{"owl", "sparrow"}, opts.Voices)
	assert.Equal(t, []string{"tts-2"}, opts.Models)
}

func TestTTSOptions_DefaultsOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	b := NewBackendSynthesizer(server.URL)
	opts := b.TTSOptions(context.Background())

	assert.Equal(t, DefaultOptions(), opts)
}
