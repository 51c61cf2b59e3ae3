// Package chat talks to the tutoring backend that generates the teacher's
// replies.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kidspeak/internal/domain/topic"
)

// StudentInfo accompanies every message so the backend can pitch its reply
// at the right level.
type StudentInfo struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Level string `json:"level"`
}

// Message is one student utterance plus lesson context.
type Message struct {
	Text    string
	Topic   *topic.Topic
	Student StudentInfo
}

type topicPayload struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Vocabulary  []string `json:"vocabulary"`
	Description string   `json:"description"`
}

type sendMessageRequest struct {
	Message  string        `json:"message"`
	Topic    *topicPayload `json:"topic"`
	UserInfo StudentInfo   `json:"userInfo"`
}

type sendMessageResponse struct {
	Response string `json:"response"`
}

// Client posts student messages to the backend's /send-message endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers a student message and returns the teacher's reply text.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	payload := sendMessageRequest{
		Message:  msg.Text,
		UserInfo: msg.Student,
	}
	if msg.Topic != nil {
		payload.Topic = &topicPayload{
			ID:          msg.Topic.ID,
			Title:       msg.Topic.Title,
			Vocabulary:  msg.Topic.Vocabulary,
			Description: msg.Topic.Description,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-message", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach tutoring backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var reply sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to parse backend reply: %w", err)
	}
	if reply.Response == "" {
		return "", fmt.Errorf("backend returned an empty reply")
	}
	return reply.Response, nil
}
