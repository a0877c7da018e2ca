package reminder

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/notexe/remind/internal/storage"
)

func TestExportImportRoundTrip(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	h := NewHistoryLog(kv)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	s.Upsert(Reminder{ID: "a", Text: "one", Date: "2025-03-10", Time: "09:00", Tag: "work"})
	s.Upsert(Reminder{ID: "b", Text: "two", Date: "2025-03-11", Time: "10:00", Recurrence: RecurWeekly})
	h.Record(Reminder{Text: "done"}, ActionCompleted, now)
	s.SaveSettings(Settings{DarkMode: true})

	blob, err := Export(s, h, now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(blob, &doc); err != nil {
		t.Fatalf("export produced invalid JSON: %v", err)
	}
	if doc.Version != ExportVersion {
		t.Errorf("version = %s, want %s", doc.Version, ExportVersion)
	}
	if !doc.ExportDate.Equal(now) {
		t.Errorf("exportDate = %v, want %v", doc.ExportDate, now)
	}
	if len(doc.Reminders) != 2 || len(doc.History) != 1 {
		t.Fatalf("document has %d reminders, %d history entries", len(doc.Reminders), len(doc.History))
	}
	if doc.Settings == nil || !doc.Settings.DarkMode {
		t.Error("settings not exported")
	}

	// Import into a fresh store.
	kv2 := storage.NewMemory()
	s2 := NewStore(kv2)
	h2 := NewHistoryLog(kv2)

	count, err := Import(s2, h2, blob)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 3 {
		t.Errorf("imported count = %d, want 3", count)
	}
	items, _ := s2.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 reminders after import, got %d", len(items))
	}
	entries, _ := h2.List()
	if len(entries) != 1 {
		t.Errorf("expected 1 history entry after import, got %d", len(entries))
	}
	if !s2.Settings().DarkMode {
		t.Error("settings not imported")
	}
}

func TestImportRejectsDocumentWithoutReminders(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	h := NewHistoryLog(kv)
	s.Upsert(Reminder{ID: "keep", Text: "existing"})

	for _, data := range []string{
		`not json at all`,
		`{"history": [], "version": "2.0.0"}`,
		`{}`,
	} {
		if _, err := Import(s, h, []byte(data)); !errors.Is(err, ErrImportFormat) {
			t.Errorf("Import(%q) = %v, want ErrImportFormat", data, err)
		}
	}

	// Nothing was written.
	items, _ := s.List()
	if len(items) != 1 || items[0].ID != "keep" {
		t.Errorf("rejected import modified the store: %+v", items)
	}
}

func TestImportMergesByID(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	h := NewHistoryLog(kv)
	s.Upsert(Reminder{ID: "a", Text: "old text", Date: "2025-03-10", Time: "09:00"})

	data := `{"reminders": [
		{"id": "a", "text": "new text", "date": "2025-03-10", "time": "09:00"},
		{"id": "b", "text": "brand new", "date": "2025-03-12", "time": "11:00"}
	]}`
	count, err := Import(s, h, []byte(data))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	items, _ := s.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Text != "new text" {
		t.Errorf("matching id not replaced: %+v", items[0])
	}
}

func TestImportNormalizesNoneRecurrence(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	h := NewHistoryLog(kv)

	data := `{"reminders": [{"id": "a", "text": "x", "date": "2025-03-10", "time": "09:00", "recurrence": "none"}]}`
	if _, err := Import(s, h, []byte(data)); err != nil {
		t.Fatalf("import: %v", err)
	}
	r, _ := s.Get("a")
	if r.Recurrence != "" {
		t.Errorf("recurrence = %q, want empty", r.Recurrence)
	}
}

func TestImportBackFillsMissingFields(t *testing.T) {
	kv := storage.NewMemory()
	s := NewStore(kv)
	h := NewHistoryLog(kv)

	// Older exports lack tag, completed and notificationSent.
	data := `{"reminders": [{"id": "a", "text": "legacy", "date": "2025-03-10", "time": "09:00"}]}`
	if _, err := Import(s, h, []byte(data)); err != nil {
		t.Fatalf("import: %v", err)
	}
	r, _ := s.Get("a")
	if r.Tag != "" || r.Completed || r.NotificationSent {
		t.Errorf("missing fields not zeroed: %+v", r)
	}
}
