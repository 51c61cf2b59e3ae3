package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// StreamSynthesizer talks to the backend's streaming speech gateway over a
// websocket. The gateway sends the clip as binary frames and signals the end
// of the utterance with a turn.end event, which lets long replies start
// arriving before synthesis finishes.
type StreamSynthesizer struct {
	wsURL          string
	connectTimeout time.Duration
	receiveTimeout time.Duration
}

type streamEvent struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`
}

type streamConfig struct {
	Type   string `json:"type"`
	Voice  string `json:"voice"`
	Model  string `json:"model"`
	Format string `json:"format"`
}

type streamSpeak struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewStreamSynthesizer(wsURL string) *StreamSynthesizer {
	return &StreamSynthesizer{
		wsURL:          wsURL,
		connectTimeout: 10 * time.Second,
		receiveTimeout: 60 * time.Second,
	}
}

func (s *StreamSynthesizer) Synthesize(ctx context.Context, text, voice, model string) ([]byte, error) {
	dialer := websocket.Dialer{HandshakeTimeout: s.connectTimeout}
	conn, _, err := dialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial error: %w", err)
	}
	defer conn.Close()

	cfg := streamConfig{Type: "speech.config", Voice: voice, Model: model, Format: "mp3"}
	if err := conn.WriteJSON(cfg); err != nil {
		return nil, fmt.Errorf("write config error: %w", err)
	}
	if err := conn.WriteJSON(streamSpeak{Type: "speak", Text: text}); err != nil {
		return nil, fmt.Errorf("write speak error: %w", err)
	}

	var audio bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		conn.SetReadDeadline(time.Now().Add(s.receiveTimeout))
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				break
			}
			return nil, fmt.Errorf("read message error: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			audio.Write(data)

		case websocket.TextMessage:
			var ev streamEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				return nil, fmt.Errorf("bad gateway event: %w", err)
			}
			switch ev.Type {
			case "turn.start":
				// ignored
			case "turn.end":
				if audio.Len() == 0 {
					return nil, fmt.Errorf("gateway sent no audio")
				}
				return audio.Bytes(), nil
			case "error":
				return nil, fmt.Errorf("gateway error: %s", ev.Error)
			default:
				return nil, fmt.Errorf("unknown gateway event: %s", ev.Type)
			}
		}
	}

	if audio.Len() == 0 {
		return nil, fmt.Errorf("gateway closed before sending audio")
	}
	return audio.Bytes(), nil
}

func (s *StreamSynthesizer) Close() error {
	return nil
}
