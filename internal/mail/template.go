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

// DefaultTemplateEndpoint is the hosted template-email API.
const DefaultTemplateEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// TemplateSender delivers reminders through a hosted template-email
// service, addressed by a fixed service/template identifier pair and a
// field map. It is an alternative to the relay for deployments without
// their own SMTP account.
type TemplateSender struct {
	endpoint   string
	serviceID  string
	templateID string
	userID     string
	fromName   string
	client     *http.Client
}

func NewTemplateSender(endpoint, serviceID, templateID, userID, fromName string) *TemplateSender {
	if endpoint == "" {
		endpoint = DefaultTemplateEndpoint
	}
	return &TemplateSender{
		endpoint:   endpoint,
		serviceID:  serviceID,
		templateID: templateID,
		userID:     userID,
		fromName:   fromName,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type templateRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendReminder invokes the template service. Template services render
// the mail themselves, so there is no preview URL.
func (t *TemplateSender) SendReminder(ctx context.Context, email string, r reminder.Reminder) (string, error) {
	payload := templateRequest{
		ServiceID:  t.serviceID,
		TemplateID: t.templateID,
		UserID:     t.userID,
		TemplateParams: map[string]string{
			"to_email":         email,
			"from_name":        t.fromName,
			"reminder_text":    r.Text,
			"reminder_date":    r.Date,
			"reminder_time":    r.Time,
			"reminder_message": r.Message,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal template request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build template request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach template service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("template service error: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	return "", nil
}
