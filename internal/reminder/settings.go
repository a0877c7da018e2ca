package reminder

import "encoding/json"

// Settings holds UI preferences persisted alongside the reminder list.
type Settings struct {
	DarkMode bool `json:"darkMode"`
}

// Account holds the notification recipient. PendingCode is the last
// verification code sent through the relay; it is cleared on verify.
type Account struct {
	Email       string `json:"email"`
	Verified    bool   `json:"verified"`
	PendingCode string `json:"pendingCode,omitempty"`
}

// Settings returns the persisted UI settings, defaulting on any read
// problem.
func (s *Store) Settings() Settings {
	var settings Settings
	s.loadJSON(keySettings, &settings)
	return settings
}

// SaveSettings persists the UI settings.
func (s *Store) SaveSettings(settings Settings) error {
	return s.saveJSON(keySettings, settings)
}

// Account returns the persisted notification account.
func (s *Store) Account() Account {
	var acct Account
	s.loadJSON(keyAccount, &acct)
	return acct
}

// SaveAccount persists the notification account.
func (s *Store) SaveAccount(acct Account) error {
	return s.saveJSON(keyAccount, acct)
}

func (s *Store) loadJSON(key string, v any) {
	blob, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return
	}
	// Fail soft on corrupt blobs, same as the reminder list.
	_ = json.Unmarshal([]byte(blob), v)
}

func (s *Store) saveJSON(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(key, string(blob))
}
