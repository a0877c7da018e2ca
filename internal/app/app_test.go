package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/mail"
	"github.com/notexe/remind/internal/reminder"
	"github.com/notexe/remind/internal/storage"
)

func allFeatures() config.FeaturesConfig {
	return config.FeaturesConfig{Tagging: true, History: true, Recurrence: true, Notification: true}
}

func newTestApp(t *testing.T, features config.FeaturesConfig) *App {
	t.Helper()
	kv := storage.NewMemory()
	return New(reminder.NewStore(kv), reminder.NewHistoryLog(kv), features, nil)
}

func TestAddAssignsIDAndValidates(t *testing.T) {
	a := newTestApp(t, allFeatures())

	added, err := a.Add(reminder.Reminder{Text: "standup", Date: "2025-03-10", Time: "09:00", Tag: "work"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Error("no id assigned")
	}
	if added.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}

	if _, err := a.Add(reminder.Reminder{Text: "no date", Time: "09:00"}); !errors.Is(err, reminder.ErrMissingFields) {
		t.Errorf("invalid add returned %v", err)
	}
}

func TestAddNormalizesNoneRecurrence(t *testing.T) {
	a := newTestApp(t, allFeatures())

	added, err := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00", Recurrence: "none"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Recurrence != "" {
		t.Errorf("recurrence = %q, want empty", added.Recurrence)
	}
}

func TestFeatureFlagsStripFields(t *testing.T) {
	a := newTestApp(t, config.FeaturesConfig{Tagging: false, Recurrence: false, History: true})

	added, err := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00", Tag: "work", Recurrence: "daily"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Tag != "" {
		t.Errorf("tagging disabled but tag = %q", added.Tag)
	}
	if added.Recurrence != "" {
		t.Errorf("recurrence disabled but recurrence = %q", added.Recurrence)
	}
}

func TestResolveByPrefix(t *testing.T) {
	a := newTestApp(t, allFeatures())
	added, _ := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00"})

	got, err := a.Resolve(added.ID[:8])
	if err != nil {
		t.Fatalf("resolve by prefix: %v", err)
	}
	if got.ID != added.ID {
		t.Errorf("resolved %s, want %s", got.ID, added.ID)
	}

	if _, err := a.Resolve("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id returned %v", err)
	}
}

func TestUpdatePreservesFlags(t *testing.T) {
	a := newTestApp(t, allFeatures())
	added, _ := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00"})

	// Mark both flags via the store directly.
	r, _ := a.Store.Get(added.ID)
	r.Completed = true
	r.NotificationSent = true
	a.Store.Upsert(r)

	text := "edited"
	updated, err := a.Update(added.ID, UpdateFields{Text: &text})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Text != "edited" {
		t.Errorf("text = %q", updated.Text)
	}
	if !updated.Completed || !updated.NotificationSent {
		t.Errorf("update dropped flags: %+v", updated)
	}
	if updated.Date != "2025-03-10" || updated.Time != "09:00" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateValidates(t *testing.T) {
	a := newTestApp(t, allFeatures())
	added, _ := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00"})

	bad := "not-a-date"
	if _, err := a.Update(added.ID, UpdateFields{Date: &bad}); !errors.Is(err, reminder.ErrBadDate) {
		t.Errorf("bad date update returned %v", err)
	}

	// Nothing was written.
	r, _ := a.Store.Get(added.ID)
	if r.Date != "2025-03-10" {
		t.Errorf("failed update modified the store: %+v", r)
	}
}

func TestToggleCompleteRecordsHistoryOnce(t *testing.T) {
	a := newTestApp(t, allFeatures())
	added, _ := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00"})

	toggled, err := a.ToggleComplete(added.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed {
		t.Error("first toggle should complete")
	}

	entries, _ := a.History.List()
	if len(entries) != 1 || entries[0].Action != reminder.ActionCompleted {
		t.Fatalf("expected one completed entry, got %+v", entries)
	}

	// Un-completing records nothing.
	if _, err := a.ToggleComplete(added.ID); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	entries, _ = a.History.List()
	if len(entries) != 1 {
		t.Errorf("un-complete added a history entry: %d entries", len(entries))
	}
}

func TestDeleteRecordsHistory(t *testing.T) {
	a := newTestApp(t, allFeatures())
	added, _ := a.Add(reminder.Reminder{Text: "gone", Date: "2025-03-10", Time: "09:00"})

	removed, err := a.Delete(added.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Text != "gone" {
		t.Errorf("removed %+v", removed)
	}

	entries, _ := a.History.List()
	if len(entries) != 1 || entries[0].Action != reminder.ActionDeleted {
		t.Errorf("expected one deleted entry, got %+v", entries)
	}

	if _, err := a.Delete(added.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete returned %v", err)
	}
}

func TestHistoryFeatureDisabled(t *testing.T) {
	a := newTestApp(t, config.FeaturesConfig{Tagging: true, History: false})
	added, _ := a.Add(reminder.Reminder{Text: "x", Date: "2025-03-10", Time: "09:00"})

	a.ToggleComplete(added.ID)
	a.Delete(added.ID)

	entries, _ := a.History.List()
	if len(entries) != 0 {
		t.Errorf("history disabled but %d entries recorded", len(entries))
	}
}

func TestExportImportRoundTripThroughFiles(t *testing.T) {
	a := newTestApp(t, allFeatures())
	a.Add(reminder.Reminder{Text: "one", Date: "2025-03-10", Time: "09:00"})
	a.Add(reminder.Reminder{Text: "two", Date: "2025-03-11", Time: "10:00"})

	path := filepath.Join(t.TempDir(), "export.json")
	if err := a.ExportTo(path); err != nil {
		t.Fatalf("export: %v", err)
	}

	b := newTestApp(t, allFeatures())
	count, err := b.ImportFrom(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	items, _ := b.Store.List()
	if len(items) != 2 {
		t.Errorf("expected 2 reminders, got %d", len(items))
	}
}

func TestImportFromMissingFile(t *testing.T) {
	a := newTestApp(t, allFeatures())
	if _, err := a.ImportFrom(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file returned %v", err)
	}
}

func TestVerificationFlow(t *testing.T) {
	var sentCode string
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
			Code  string `json:"code"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		sentCode = req.Code
		json.NewEncoder(w).Encode(map[string]any{"success": true, "previewUrl": "https://ethereal.email/message/x"})
	}))
	defer relay.Close()

	kv := storage.NewMemory()
	a := New(reminder.NewStore(kv), reminder.NewHistoryLog(kv), allFeatures(), mail.NewRelayClient(relay.URL))

	previewURL, err := a.StartVerification(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("start verification: %v", err)
	}
	if previewURL == "" {
		t.Error("no preview URL returned")
	}
	if len(sentCode) != 4 {
		t.Fatalf("sent code = %q, want 4 digits", sentCode)
	}

	acct := a.Store.Account()
	if acct.Email != "a@example.com" || acct.Verified {
		t.Errorf("account after start: %+v", acct)
	}

	if err := a.ConfirmVerification("wrong"); !errors.Is(err, ErrCodeMismatch) {
		t.Errorf("wrong code returned %v", err)
	}
	if err := a.ConfirmVerification(sentCode); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	acct = a.Store.Account()
	if !acct.Verified || acct.PendingCode != "" {
		t.Errorf("account after confirm: %+v", acct)
	}

	// The code is single-use.
	if err := a.ConfirmVerification(sentCode); !errors.Is(err, ErrNoPendingCode) {
		t.Errorf("reused code returned %v", err)
	}
}

func TestConfirmVerificationWithoutEmail(t *testing.T) {
	a := newTestApp(t, allFeatures())
	if err := a.ConfirmVerification("1234"); !errors.Is(err, ErrNoEmail) {
		t.Errorf("confirm without email returned %v", err)
	}
}

func TestSetTheme(t *testing.T) {
	a := newTestApp(t, allFeatures())
	if err := a.SetTheme(true); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if !a.Store.Settings().DarkMode {
		t.Error("dark mode not persisted")
	}
}
