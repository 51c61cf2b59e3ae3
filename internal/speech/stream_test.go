package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streamTestServer(t *testing.T, handler func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(server.Close)
	return server
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestStreamSynthesize_CollectsChunks(t *testing.T) {
	server := streamTestServer(t, func(conn *websocket.Conn) {
		var cfg streamConfig
		require.NoError(t, conn.ReadJSON(&cfg))
		assert.Equal(t, "speech.config", cfg.Type)
		assert.Equal(t, "alloy", cfg.Voice)

		var speak streamSpeak
		require.NoError(t, conn.ReadJSON(&speak))
		assert.Equal(t, "Hello there!", speak.Text)

		conn.WriteJSON(streamEvent{Type: "turn.start"})
		conn.WriteMessage(websocket.BinaryMessage, []byte("chunk1"))
		conn.WriteMessage(websocket.BinaryMessage, []byte("chunk2"))
		conn.WriteJSON(streamEvent{Type: "turn.end"})
	})

	s := NewStreamSynthesizer(wsURL(server))
	audio, err := s.Synthesize(context.Background(), "Hello there!", "alloy", "tts-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("chunk1chunk2"), audio)
}

func TestStreamSynthesize_GatewayError(t *testing.T) {
	server := streamTestServer(t, func(conn *websocket.Conn) {
		var cfg streamConfig
		conn.ReadJSON(&cfg)
		var speak streamSpeak
		conn.ReadJSON(&speak)
		conn.WriteJSON(streamEvent{Type: "error", Error: "bad voice"})
	})

	s := NewStreamSynthesizer(wsURL(server))
	_, err := s.Synthesize(context.Background(), "Hello", "ghost", "tts-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad voice")
}

func TestStreamSynthesize_NoAudio(t *testing.T) {
	server := streamTestServer(t, func(conn *websocket.Conn) {
		var cfg streamConfig
		conn.ReadJSON(&cfg)
		var speak streamSpeak
		conn.ReadJSON(&speak)
		conn.WriteJSON(streamEvent{Type: "turn.end"})
	})

	s := NewStreamSynthesizer(wsURL(server))
	_, err := s.Synthesize(context.Background(), "Hello", "alloy", "tts-1")
	assert.Error(t, err)
}

func TestStreamSynthesize_DialFailure(t *testing.T) {
	s := NewStreamSynthesizer("ws://127.0.0.1:1/nope")
	_, err := s.Synthesize(context.Background(), "Hello", "alloy", "tts-1")
	assert.Error(t, err)
}
