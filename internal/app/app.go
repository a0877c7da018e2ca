// Package app holds the application operations shared by the CLI, the
// REPL and the MCP server. The front ends stay thin adapters: every
// mutation and query goes through here.
package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/mail"
	"github.com/notexe/remind/internal/reminder"
)

var (
	ErrNotFound      = errors.New("reminder not found")
	ErrNoEmail       = errors.New("no email address configured")
	ErrNoPendingCode = errors.New("no verification pending; set an email first")
	ErrCodeMismatch  = errors.New("verification code does not match")
)

type App struct {
	Store    *reminder.Store
	History  *reminder.HistoryLog
	Features config.FeaturesConfig

	// Verifier sends verification codes; nil disables the email flow.
	Verifier *mail.RelayClient

	now func() time.Time
}

func New(store *reminder.Store, history *reminder.HistoryLog, features config.FeaturesConfig, verifier *mail.RelayClient) *App {
	return &App{
		Store:    store,
		History:  history,
		Features: features,
		Verifier: verifier,
		now:      time.Now,
	}
}

// Add validates and appends a new reminder.
func (a *App) Add(r reminder.Reminder) (reminder.Reminder, error) {
	if !a.Features.Tagging {
		r.Tag = ""
	}
	if !a.Features.Recurrence {
		r.Recurrence = ""
	}
	if r.Recurrence == reminder.RecurNone {
		r.Recurrence = ""
	}
	if err := r.Validate(); err != nil {
		return reminder.Reminder{}, err
	}
	r.ID = uuid.NewString()
	r.CreatedAt = a.now()
	if err := a.Store.Upsert(r); err != nil {
		return reminder.Reminder{}, err
	}
	return r, nil
}

// Resolve finds a reminder by full id or unique id prefix.
func (a *App) Resolve(idOrPrefix string) (reminder.Reminder, error) {
	if r, ok := a.Store.Get(idOrPrefix); ok {
		return r, nil
	}
	items, err := a.Store.List()
	if err != nil {
		return reminder.Reminder{}, err
	}
	var match reminder.Reminder
	found := 0
	for _, r := range items {
		if len(idOrPrefix) >= 4 && len(r.ID) >= len(idOrPrefix) && r.ID[:len(idOrPrefix)] == idOrPrefix {
			match = r
			found++
		}
	}
	switch found {
	case 0:
		return reminder.Reminder{}, ErrNotFound
	case 1:
		return match, nil
	default:
		return reminder.Reminder{}, fmt.Errorf("id prefix %q is ambiguous", idOrPrefix)
	}
}

// UpdateFields holds optional fields for a partial update.
type UpdateFields struct {
	Text       *string
	Date       *string
	Time       *string
	Message    *string
	Tag        *string
	Recurrence *string
}

// Update overwrites the provided fields; completed and notificationSent
// are preserved.
func (a *App) Update(id string, fields UpdateFields) (reminder.Reminder, error) {
	r, ok := a.Store.Get(id)
	if !ok {
		return reminder.Reminder{}, ErrNotFound
	}

	if fields.Text != nil {
		r.Text = *fields.Text
	}
	if fields.Date != nil {
		r.Date = *fields.Date
	}
	if fields.Time != nil {
		r.Time = *fields.Time
	}
	if fields.Message != nil {
		r.Message = *fields.Message
	}
	if fields.Tag != nil && a.Features.Tagging {
		r.Tag = *fields.Tag
	}
	if fields.Recurrence != nil && a.Features.Recurrence {
		r.Recurrence = *fields.Recurrence
		if r.Recurrence == reminder.RecurNone {
			r.Recurrence = ""
		}
	}

	if err := r.Validate(); err != nil {
		return reminder.Reminder{}, err
	}
	if err := a.Store.Upsert(r); err != nil {
		return reminder.Reminder{}, err
	}
	return r, nil
}

// ToggleComplete flips the completed flag. Completing records a history
// entry; un-completing does not.
func (a *App) ToggleComplete(id string) (reminder.Reminder, error) {
	r, ok := a.Store.Get(id)
	if !ok {
		return reminder.Reminder{}, ErrNotFound
	}
	r.Completed = !r.Completed
	if err := a.Store.Upsert(r); err != nil {
		return reminder.Reminder{}, err
	}
	if r.Completed && a.Features.History {
		if err := a.History.Record(r, reminder.ActionCompleted, a.now()); err != nil {
			return r, err
		}
	}
	return r, nil
}

// Delete removes a reminder and records it in the history log.
func (a *App) Delete(id string) (reminder.Reminder, error) {
	removed, ok, err := a.Store.Remove(id)
	if err != nil {
		return reminder.Reminder{}, err
	}
	if !ok {
		return reminder.Reminder{}, ErrNotFound
	}
	if a.Features.History {
		if err := a.History.Record(removed, reminder.ActionDeleted, a.now()); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// List projects pending recurring occurrences, then returns the filtered
// list sorted by due time.
func (a *App) List(f reminder.Filter) ([]reminder.Reminder, error) {
	if a.Features.Recurrence {
		if _, err := reminder.Project(a.Store, a.now()); err != nil {
			return nil, err
		}
	}
	items, err := a.Store.List()
	if err != nil {
		return nil, err
	}
	return reminder.Apply(items, f), nil
}

// ClearAll deletes every reminder.
func (a *App) ClearAll() error {
	return a.Store.Clear()
}

// ExportTo writes the export document to path.
func (a *App) ExportTo(path string) error {
	blob, err := reminder.Export(a.Store, a.History, a.now())
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

// ImportFrom reads an export document from path and merges it.
func (a *App) ImportFrom(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return reminder.Import(a.Store, a.History, data)
}

// SetTheme persists the theme preference.
func (a *App) SetTheme(dark bool) error {
	settings := a.Store.Settings()
	settings.DarkMode = dark
	return a.Store.SaveSettings(settings)
}

// StartVerification stores the address with a fresh 4-digit code and
// mails the code through the relay. Returns the relay's preview URL.
func (a *App) StartVerification(ctx context.Context, email string) (string, error) {
	if a.Verifier == nil {
		return "", ErrNoEmail
	}
	code, err := verificationCode()
	if err != nil {
		return "", err
	}

	previewURL, err := a.Verifier.SendVerification(ctx, email, code)
	if err != nil {
		return "", fmt.Errorf("failed to send verification code: %w", err)
	}

	if err := a.Store.SaveAccount(reminder.Account{Email: email, PendingCode: code}); err != nil {
		return "", err
	}
	return previewURL, nil
}

// ConfirmVerification checks the code against the pending one and marks
// the address verified.
func (a *App) ConfirmVerification(code string) error {
	acct := a.Store.Account()
	if acct.Email == "" {
		return ErrNoEmail
	}
	if acct.PendingCode == "" {
		return ErrNoPendingCode
	}
	if code != acct.PendingCode {
		return ErrCodeMismatch
	}
	acct.Verified = true
	acct.PendingCode = ""
	return a.Store.SaveAccount(acct)
}

func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
