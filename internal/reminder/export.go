package reminder

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ExportVersion is written into export documents for forward compatibility.
const ExportVersion = "2.0.0"

var ErrImportFormat = errors.New("import document has no reminders array")

// Document is the export/import file shape.
type Document struct {
	Reminders  []Reminder     `json:"reminders"`
	History    []HistoryEntry `json:"history,omitempty"`
	Settings   *Settings      `json:"settings,omitempty"`
	ExportDate time.Time      `json:"exportDate"`
	Version    string         `json:"version"`
}

// Export serializes the store, history log and settings into a JSON
// document.
func Export(s *Store, h *HistoryLog, now time.Time) ([]byte, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}
	entries, err := h.List()
	if err != nil {
		return nil, err
	}
	settings := s.Settings()

	doc := Document{
		Reminders:  items,
		History:    entries,
		Settings:   &settings,
		ExportDate: now,
		Version:    ExportVersion,
	}
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export document: %w", err)
	}
	return blob, nil
}

// Import parses an export document and merges it into the store. A
// document without a reminders array is rejected before anything is
// written. Reminders missing tag or completed fields (older exports) are
// back-filled with zero values by decoding. Returns the number of
// imported items, reminders and history entries combined.
func Import(s *Store, h *HistoryLog, data []byte) (int, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if doc.Reminders == nil {
		return 0, ErrImportFormat
	}

	for _, r := range doc.Reminders {
		if r.Recurrence == RecurNone {
			r.Recurrence = ""
		}
		if err := s.Upsert(r); err != nil {
			return 0, err
		}
	}

	count := len(doc.Reminders)
	if doc.History != nil {
		if err := h.Replace(doc.History); err != nil {
			return 0, err
		}
		count += len(doc.History)
	}
	if doc.Settings != nil {
		if err := s.SaveSettings(*doc.Settings); err != nil {
			return 0, err
		}
	}
	return count, nil
}
