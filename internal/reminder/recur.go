package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Occurrences are never materialized further than this past today. Bounds
// growth for monthly and yearly reminders with ancient base dates.
const projectionHorizonMonths = 3

// nextOccurrence returns the occurrence date that follows d for the given
// recurrence kind. Monthly and yearly keep the day of month, clamped to
// the length of the target month.
func nextOccurrence(d time.Time, kind string) time.Time {
	switch kind {
	case RecurDaily:
		return d.AddDate(0, 0, 1)
	case RecurWeekly:
		return d.AddDate(0, 0, 7)
	case RecurMonthly:
		return addMonthsClamped(d, 1)
	case RecurYearly:
		return addMonthsClamped(d, 12)
	}
	return d
}

func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, months, 0)
	day := d.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

// Project materializes the next occurrence of every recurring reminder
// whose base date has passed. The template is fast-forwarded to the first
// occurrence on or after today, so a reminder dormant for weeks produces
// one upcoming occurrence instead of a backlog. The template itself is
// never mutated. Running Project twice in the same day adds nothing: an
// occurrence already materialized for a (template, date) pair is kept.
//
// Returns the number of occurrences appended.
func Project(s *Store, now time.Time) (int, error) {
	items, err := s.List()
	if err != nil {
		return 0, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := addMonthsClamped(today, projectionHorizonMonths)

	materialized := make(map[string]bool)
	for _, r := range items {
		if r.Generated && r.TemplateID != "" {
			materialized[r.TemplateID+"|"+r.Date] = true
		}
	}

	added := 0
	for _, r := range items {
		if !r.Recurring() {
			continue
		}
		base, err := time.ParseInLocation(DateLayout, r.Date, now.Location())
		if err != nil || !base.Before(today) {
			continue
		}

		next := base
		for next.Before(today) {
			advanced := nextOccurrence(next, r.Recurrence)
			if !advanced.After(next) {
				break
			}
			next = advanced
		}
		if next.Before(today) || next.After(horizon) {
			continue
		}

		date := next.Format(DateLayout)
		if materialized[r.ID+"|"+date] {
			continue
		}

		occ := Reminder{
			ID:         uuid.NewString(),
			Text:       r.Text,
			Date:       date,
			Time:       r.Time,
			Message:    r.Message,
			Tag:        r.Tag,
			Generated:  true,
			TemplateID: r.ID,
			CreatedAt:  now,
		}
		if err := s.Upsert(occ); err != nil {
			return added, err
		}
		materialized[r.ID+"|"+date] = true
		added++
	}
	return added, nil
}
