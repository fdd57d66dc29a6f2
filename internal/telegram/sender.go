// Package telegram provides a minimal Telegram Bot API client for delivering
// notifications to a single chat.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendTimeout = 10 * time.Second

// DeliveryError is a failed sendMessage call.
type DeliveryError struct {
	StatusCode  int
	Description string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("telegram delivery failed (%d): %s", e.StatusCode, e.Description)
}

// Sender sends Markdown-formatted messages to one chat via the Bot API.
type Sender struct {
	httpClient *http.Client
	baseURL    string
	chatID     int64
}

// NewSender creates a sender bound to the given bot token and chat.
func NewSender(token string, chatID int64) *Sender {
	return &Sender{
		httpClient: &http.Client{Timeout: sendTimeout},
		baseURL:    "https://api.telegram.org/bot" + token,
		chatID:     chatID,
	}
}

// NewSenderWithBaseURL creates a sender against a custom API base, used in
// tests.
func NewSenderWithBaseURL(baseURL string, chatID int64) *Sender {
	return &Sender{
		httpClient: &http.Client{Timeout: sendTimeout},
		baseURL:    baseURL,
		chatID:     chatID,
	}
}

// Send delivers one message to the bound chat. Fire-and-forget from the
// caller's perspective: no retry lives here.
func (s *Sender) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]any{
		"chat_id":    s.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("encode sendMessage payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/sendMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var apiResp struct {
			Description string `json:"description"`
		}
		_ = json.Unmarshal(body, &apiResp)
		if apiResp.Description == "" {
			apiResp.Description = string(body)
		}
		return &DeliveryError{StatusCode: resp.StatusCode, Description: apiResp.Description}
	}
	return nil
}
