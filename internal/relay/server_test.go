package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type fakeSender struct {
	to      string
	subject string
	text    string
	html    string
	err     error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) (string, error) {
	f.to, f.subject, f.text, f.html = to, subject, text, html
	if f.err != nil {
		return "", f.err
	}
	return "https://ethereal.email/message/abc", nil
}

func newTestServer(sender Sender) *echo.Echo {
	e := echo.New()
	logger := log.New()
	logger.SetOutput(io.Discard)
	Register(e, sender, logger)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSendVerification(t *testing.T) {
	sender := &fakeSender{}
	e := newTestServer(sender)

	rec := postJSON(e, "/send-verification", `{"email":"a@example.com","code":"1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success    bool   `json:"success"`
		PreviewURL string `json:"previewUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.PreviewURL == "" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if sender.to != "a@example.com" {
		t.Errorf("sent to %s", sender.to)
	}
	if sender.subject != "Your Verification Code" {
		t.Errorf("subject = %q", sender.subject)
	}
	if !strings.Contains(sender.text, "1234") || !strings.Contains(sender.html, "1234") {
		t.Error("code missing from mail body")
	}
}

func TestSendVerificationMissingFields(t *testing.T) {
	e := newTestServer(&fakeSender{})

	for _, body := range []string{
		`{}`,
		`{"email":"a@example.com"}`,
		`{"code":"1234"}`,
	} {
		rec := postJSON(e, "/send-verification", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Email and code required") {
			t.Errorf("body %s: unexpected error message %s", body, rec.Body.String())
		}
	}
}

func TestSendVerificationFailure(t *testing.T) {
	e := newTestServer(&fakeSender{err: errors.New("smtp down")})

	rec := postJSON(e, "/send-verification", `{"email":"a@example.com","code":"1234"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to send email") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestSendReminder(t *testing.T) {
	sender := &fakeSender{}
	e := newTestServer(sender)

	rec := postJSON(e, "/send-reminder",
		`{"email":"a@example.com","reminder":{"text":"Standup","time":"09:00","message":"bring notes"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if sender.subject != "Reminder: Standup" {
		t.Errorf("subject = %q", sender.subject)
	}
	if !strings.Contains(sender.text, "Standup") || !strings.Contains(sender.text, "09:00") {
		t.Errorf("text body missing fields: %q", sender.text)
	}
	if !strings.Contains(sender.text, "bring notes") || !strings.Contains(sender.html, "bring notes") {
		t.Error("optional message missing from mail body")
	}
}

func TestSendReminderMissingFields(t *testing.T) {
	e := newTestServer(&fakeSender{})

	for _, body := range []string{
		`{}`,
		`{"email":"a@example.com"}`,
		`{"reminder":{"text":"x","time":"09:00"}}`,
	} {
		rec := postJSON(e, "/send-reminder", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Email and reminder details required") {
			t.Errorf("body %s: unexpected error message %s", body, rec.Body.String())
		}
	}
}

func TestSendReminderFailure(t *testing.T) {
	e := newTestServer(&fakeSender{err: errors.New("smtp down")})

	rec := postJSON(e, "/send-reminder",
		`{"email":"a@example.com","reminder":{"text":"x","time":"09:00"}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to send reminder") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	e := newTestServer(&fakeSender{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
