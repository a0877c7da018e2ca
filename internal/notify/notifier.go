// Package notify runs the due-reminder polling loop. A reminder fires
// when its calendar day and HH:MM minute match the current tick; a
// minute missed entirely (app not running) is never retroactively fired.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/notexe/remind/internal/reminder"
)

// Mailer is the external delivery collaborator. It returns a preview URL
// when the backing mail account provides one.
type Mailer interface {
	SendReminder(ctx context.Context, email string, r reminder.Reminder) (previewURL string, err error)
}

// Notifier evaluates all reminders once per tick and delivers each
// occurrence at most once. Delivery is best-effort: the notificationSent
// flag is persisted even when the send fails, so a failed delivery is a
// silent miss rather than a duplicate email.
type Notifier struct {
	store      *reminder.Store
	mailer     Mailer
	clock      Clock
	recurrence bool
}

// New creates a notifier. When recurrence is enabled, each tick first
// runs the projector so generated occurrences can fire the same day.
func New(store *reminder.Store, mailer Mailer, clock Clock, recurrence bool) *Notifier {
	return &Notifier{
		store:      store,
		mailer:     mailer,
		clock:      clock,
		recurrence: recurrence,
	}
}

// Run blocks and evaluates ticks until ctx is cancelled. One tick fires
// immediately, the next at the top of the following minute, then every
// 60 seconds.
func (n *Notifier) Run(ctx context.Context) error {
	log.Println("[notify] Started. Checking once per minute.")

	n.tick(ctx)

	now := n.clock.Now()
	wait := now.Truncate(time.Minute).Add(time.Minute).Sub(now)
	select {
	case <-ctx.Done():
		log.Println("[notify] Shutting down...")
		return nil
	case <-time.After(wait):
	}
	n.tick(ctx)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[notify] Shutting down...")
			return nil
		case <-ticker.C:
			n.tick(ctx)
		}
	}
}

func (n *Notifier) tick(ctx context.Context) {
	now := n.clock.Now()

	if n.recurrence {
		if added, err := reminder.Project(n.store, now); err != nil {
			log.Printf("[notify] Error: projection failed: %v", err)
		} else if added > 0 {
			log.Printf("[notify] Materialized %d recurring occurrence(s)", added)
		}
	}

	acct := n.store.Account()
	if acct.Email == "" || !acct.Verified {
		return
	}

	today := now.Format(reminder.DateLayout)
	minute := now.Format(reminder.TimeLayout)

	items, err := n.store.List()
	if err != nil {
		log.Printf("[notify] Error: listing reminders: %v", err)
		return
	}

	for _, r := range items {
		if r.Completed || r.NotificationSent {
			continue
		}
		if r.Date != today || r.Time != minute {
			continue
		}

		previewURL, sendErr := n.mailer.SendReminder(ctx, acct.Email, r)
		if sendErr != nil {
			// At-most-once: the flag is set below regardless.
			log.Printf("[notify] Error: delivery failed for %q: %v", r.Text, sendErr)
		} else if previewURL != "" {
			log.Printf("[notify] Sent %q to %s (preview: %s)", r.Text, acct.Email, previewURL)
		} else {
			log.Printf("[notify] Sent %q to %s", r.Text, acct.Email)
		}

		r.NotificationSent = true
		if err := n.store.Upsert(r); err != nil {
			log.Printf("[notify] Error: persisting sent flag for %q: %v", r.Text, err)
		}
	}
}
