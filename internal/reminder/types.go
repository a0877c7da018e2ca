package reminder

import (
	"errors"
	"fmt"
	"time"
)

// Recurrence kinds.
const (
	RecurNone    = "none"
	RecurDaily   = "daily"
	RecurWeekly  = "weekly"
	RecurMonthly = "monthly"
	RecurYearly  = "yearly"
)

// History actions.
const (
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
)

// Layouts for the stored date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrMissingFields = errors.New("text, date and time are required")
	ErrBadDate       = errors.New("date must be a valid YYYY-MM-DD calendar day")
	ErrBadTime       = errors.New("time must be a valid HH:MM value")
	ErrBadRecurrence = errors.New("recurrence must be none, daily, weekly, monthly or yearly")
)

// Reminder is one entry in the list. Generated occurrences are ordinary
// reminders materialized by the projector; TemplateID points back at the
// recurring reminder they were derived from.
type Reminder struct {
	ID               string    `json:"id"`
	Text             string    `json:"text"`
	Date             string    `json:"date"` // local calendar day, YYYY-MM-DD
	Time             string    `json:"time"` // local time of day, HH:MM
	Message          string    `json:"message,omitempty"`
	Tag              string    `json:"tag,omitempty"`
	Recurrence       string    `json:"recurrence,omitempty"`
	NotificationSent bool      `json:"notificationSent"`
	Generated        bool      `json:"generated,omitempty"`
	TemplateID       string    `json:"templateId,omitempty"`
	Completed        bool      `json:"completed"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
}

// HistoryEntry is a snapshot of a completed or deleted reminder. It copies
// text and tag at the time of the action and never references the store.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tag       string    `json:"tag,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the user-supplied fields of a reminder.
func (r Reminder) Validate() error {
	if r.Text == "" || r.Date == "" || r.Time == "" {
		return ErrMissingFields
	}
	if _, err := time.ParseInLocation(DateLayout, r.Date, time.Local); err != nil {
		return fmt.Errorf("%w: %q", ErrBadDate, r.Date)
	}
	if _, err := time.Parse(TimeLayout, r.Time); err != nil {
		return fmt.Errorf("%w: %q", ErrBadTime, r.Time)
	}
	switch r.Recurrence {
	case "", RecurNone, RecurDaily, RecurWeekly, RecurMonthly, RecurYearly:
	default:
		return fmt.Errorf("%w: %q", ErrBadRecurrence, r.Recurrence)
	}
	return nil
}

// Recurring reports whether the reminder is a recurrence template.
func (r Reminder) Recurring() bool {
	return !r.Generated && r.Recurrence != "" && r.Recurrence != RecurNone
}

// DueAt combines the date and time fields into a local wall-clock instant.
func (r Reminder) DueAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+"T"+TimeLayout, r.Date+"T"+r.Time, time.Local)
}
