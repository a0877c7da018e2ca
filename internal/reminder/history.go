package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/notexe/remind/internal/storage"
)

// HistoryLimit caps the history log; the oldest entry is evicted first.
const HistoryLimit = 50

// HistoryLog is the append-only bounded log of completed and deleted
// reminders.
type HistoryLog struct {
	kv storage.KV
}

func NewHistoryLog(kv storage.KV) *HistoryLog {
	return &HistoryLog{kv: kv}
}

// List returns all entries, oldest first.
func (h *HistoryLog) List() ([]HistoryEntry, error) {
	return h.load(), nil
}

// Record appends a snapshot of the reminder for the given action.
func (h *HistoryLog) Record(r Reminder, action string, now time.Time) error {
	return h.Append(HistoryEntry{
		ID:        uuid.NewString(),
		Text:      r.Text,
		Tag:       r.Tag,
		Action:    action,
		Timestamp: now,
	})
}

// Append adds an entry, evicting the oldest ones past HistoryLimit.
func (h *HistoryLog) Append(e HistoryEntry) error {
	entries := append(h.load(), e)
	if n := len(entries) - HistoryLimit; n > 0 {
		entries = entries[n:]
	}
	return h.save(entries)
}

// Clear empties the log.
func (h *HistoryLog) Clear() error {
	return h.save([]HistoryEntry{})
}

// Replace overwrites the whole log, applying the size cap.
func (h *HistoryLog) Replace(entries []HistoryEntry) error {
	if n := len(entries) - HistoryLimit; n > 0 {
		entries = entries[n:]
	}
	return h.save(entries)
}

func (h *HistoryLog) load() []HistoryEntry {
	blob, ok, err := h.kv.Get(keyHistory)
	if err != nil || !ok {
		return nil
	}
	var entries []HistoryEntry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil
	}
	return entries
}

func (h *HistoryLog) save(entries []HistoryEntry) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := h.kv.Set(keyHistory, string(blob)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
