package reminder

import (
	"sort"
	"strings"
)

// Filter narrows the visible reminder set. Zero-value fields match
// everything; non-zero fields combine with AND.
type Filter struct {
	Date  string // exact YYYY-MM-DD match
	Tag   string // exact tag match, "all" matches everything
	Query string // case-insensitive substring of text or tag
}

// Match reports whether the reminder passes the filter.
func (f Filter) Match(r Reminder) bool {
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Tag != "" && f.Tag != "all" && r.Tag != f.Tag {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(r.Text), q) &&
			!strings.Contains(strings.ToLower(r.Tag), q) {
			return false
		}
	}
	return true
}

// Apply filters the list and sorts the result by due date and time.
func Apply(items []Reminder, f Filter) []Reminder {
	var out []Reminder
	for _, r := range items {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}
