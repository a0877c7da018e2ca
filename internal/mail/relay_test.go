package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notexe/remind/internal/reminder"
)

func TestSendVerification(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "previewUrl": "https://ethereal.email/message/x"})
	}))
	defer ts.Close()

	c := NewRelayClient(ts.URL)
	previewURL, err := c.SendVerification(context.Background(), "a@example.com", "1234")
	if err != nil {
		t.Fatalf("send verification: %v", err)
	}
	if previewURL != "https://ethereal.email/message/x" {
		t.Errorf("previewURL = %q", previewURL)
	}
	if gotPath != "/send-verification" {
		t.Errorf("path = %s", gotPath)
	}
	if gotBody["email"] != "a@example.com" || gotBody["code"] != "1234" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestSendReminder(t *testing.T) {
	var gotBody struct {
		Email    string `json:"email"`
		Reminder struct {
			Text    string `json:"text"`
			Date    string `json:"date"`
			Time    string `json:"time"`
			Message string `json:"message"`
		} `json:"reminder"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer ts.Close()

	c := NewRelayClient(ts.URL)
	_, err := c.SendReminder(context.Background(), "a@example.com", reminder.Reminder{
		Text: "standup", Date: "2025-03-10", Time: "09:00", Message: "bring notes",
	})
	if err != nil {
		t.Fatalf("send reminder: %v", err)
	}
	if gotBody.Email != "a@example.com" || gotBody.Reminder.Text != "standup" ||
		gotBody.Reminder.Time != "09:00" || gotBody.Reminder.Message != "bring notes" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestRelayErrorPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"error": "Failed to send email"})
	}))
	defer ts.Close()

	c := NewRelayClient(ts.URL)
	_, err := c.SendVerification(context.Background(), "a@example.com", "1234")
	if err == nil || !strings.Contains(err.Error(), "Failed to send email") {
		t.Errorf("expected relay error, got %v", err)
	}
}

func TestRelayUnreachable(t *testing.T) {
	c := NewRelayClient("http://127.0.0.1:1")
	if _, err := c.SendVerification(context.Background(), "a@example.com", "1234"); err == nil {
		t.Error("expected connection error")
	}
}
