package reminder

import (
	"encoding/json"
	"fmt"

	"github.com/notexe/remind/internal/storage"
)

// Blob keys. Each key holds one independently JSON-encoded document.
const (
	keyReminders = "reminders"
	keyHistory   = "remindersHistory"
	keySettings  = "settings"
	keyAccount   = "userEmail"
)

// Store provides CRUD over the persisted reminder list. Every operation
// reads, modifies and writes the whole list; there are no partial updates.
// Reads fail soft: a corrupt or missing blob is an empty list, never an
// error. Write failures are returned and non-fatal to the caller.
type Store struct {
	kv storage.KV
}

// NewStore creates a store backed by the given KV blob store.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// List returns all reminders in insertion order.
func (s *Store) List() ([]Reminder, error) {
	return s.load(), nil
}

// Get returns the reminder with the given id.
func (s *Store) Get(id string) (Reminder, bool) {
	for _, r := range s.load() {
		if r.ID == id {
			return r, true
		}
	}
	return Reminder{}, false
}

// Upsert replaces the reminder with a matching id, or appends it.
func (s *Store) Upsert(r Reminder) error {
	items := s.load()
	for i := range items {
		if items[i].ID == r.ID {
			items[i] = r
			return s.save(items)
		}
	}
	return s.save(append(items, r))
}

// Remove deletes the reminder with the given id. It returns the removed
// reminder so callers can record it in the history log.
func (s *Store) Remove(id string) (Reminder, bool, error) {
	items := s.load()
	for i, r := range items {
		if r.ID == id {
			items = append(items[:i], items[i+1:]...)
			return r, true, s.save(items)
		}
	}
	return Reminder{}, false, nil
}

// Clear deletes all reminders.
func (s *Store) Clear() error {
	return s.save([]Reminder{})
}

// Replace overwrites the whole list, preserving the given order.
func (s *Store) Replace(items []Reminder) error {
	return s.save(items)
}

func (s *Store) load() []Reminder {
	blob, ok, err := s.kv.Get(keyReminders)
	if err != nil || !ok {
		return nil
	}
	var items []Reminder
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		// Corrupt blob: recover as an empty list.
		return nil
	}
	return items
}

func (s *Store) save(items []Reminder) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	if err := s.kv.Set(keyReminders, string(blob)); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}
	return nil
}
