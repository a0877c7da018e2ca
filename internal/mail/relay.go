// Package mail contains outbound delivery collaborators used by the
// notifier and the verification flow.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/notexe/remind/internal/reminder"
)

// RelayClient talks to the remind-relay HTTP server.
type RelayClient struct {
	baseURL string
	client  *http.Client
}

// NewRelayClient creates a client for the relay at baseURL
// (e.g. http://localhost:3000).
func NewRelayClient(baseURL string) *RelayClient {
	return &RelayClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type verificationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type reminderRequest struct {
	Email    string          `json:"email"`
	Reminder reminderPayload `json:"reminder"`
}

type reminderPayload struct {
	Text    string `json:"text"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message,omitempty"`
}

type relayResponse struct {
	Success    bool   `json:"success"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SendVerification asks the relay to mail a verification code.
func (c *RelayClient) SendVerification(ctx context.Context, email, code string) (string, error) {
	return c.post(ctx, "/send-verification", verificationRequest{Email: email, Code: code})
}

// SendReminder asks the relay to mail a due-reminder notification.
func (c *RelayClient) SendReminder(ctx context.Context, email string, r reminder.Reminder) (string, error) {
	return c.post(ctx, "/send-reminder", reminderRequest{
		Email: email,
		Reminder: reminderPayload{
			Text:    r.Text,
			Date:    r.Date,
			Time:    r.Time,
			Message: r.Message,
		},
	})
}

func (c *RelayClient) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read relay response: %w", err)
	}

	var relayResp relayResponse
	if err := json.Unmarshal(respBody, &relayResp); err != nil {
		return "", fmt.Errorf("failed to parse relay response: %w", err)
	}

	if !relayResp.Success {
		if relayResp.Error != "" {
			return "", fmt.Errorf("relay error: %s", relayResp.Error)
		}
		return "", fmt.Errorf("relay error: unexpected status %d", resp.StatusCode)
	}
	return relayResp.PreviewURL, nil
}
