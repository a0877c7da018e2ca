package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/remind/internal/reminder"
)

type Formatter struct {
	theme   Theme
	colored bool
}

func NewFormatter(theme Theme, colored bool) *Formatter {
	return &Formatter{theme: theme, colored: colored}
}

// Theme returns the active theme.
func (f *Formatter) Theme() Theme { return f.theme }

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if !f.colored {
		return s
	}
	return style.Render(s)
}

// FormatReminder renders one list row: title, countdown, tag and
// schedule metadata.
func (f *Formatter) FormatReminder(r reminder.Reminder, now time.Time) string {
	var b strings.Builder

	title := r.Text
	if r.Completed {
		b.WriteString(f.render(f.theme.Completed, title))
	} else {
		b.WriteString(f.render(f.theme.Title, title))
	}

	left := TimeLeft(r, now)
	b.WriteString("  ")
	b.WriteString(f.render(f.countdownStyle(left), left))

	b.WriteString("\n    ")
	b.WriteString(f.render(f.theme.Meta, formatDateDisplay(r.Date)+" at "+formatTimeDisplay(r.Time)))
	if r.Tag != "" {
		b.WriteString("  ")
		b.WriteString(f.render(f.theme.Tag, "#"+r.Tag))
	}
	if r.Recurring() {
		b.WriteString("  ")
		b.WriteString(f.render(f.theme.Dim, "↻ "+r.Recurrence))
	}
	if r.Generated {
		b.WriteString("  ")
		b.WriteString(f.render(f.theme.Dim, "(recurring)"))
	}
	if r.Completed {
		b.WriteString("  ")
		b.WriteString(f.render(f.theme.Success, "Completed"))
	}
	b.WriteString("\n    ")
	b.WriteString(f.render(f.theme.Dim, "id: "+r.ID))

	return b.String()
}

// FormatHistoryEntry renders one history row.
func (f *Formatter) FormatHistoryEntry(e reminder.HistoryEntry) string {
	icon := "✅"
	if e.Action == reminder.ActionDeleted {
		icon = "🗑"
	}
	line := fmt.Sprintf("%s %s", icon, e.Text)
	if e.Tag != "" {
		line += "  " + f.render(f.theme.Tag, "#"+e.Tag)
	}
	line += "  " + f.render(f.theme.Dim, e.Timestamp.Format("Jan 2 15:04"))
	return line
}

// FormatQuote renders the quote of the day.
func (f *Formatter) FormatQuote(q Quote) string {
	return f.render(f.theme.Quote, fmt.Sprintf("%q — %s", q.Text, q.Author))
}

func (f *Formatter) FormatHeader(s string) string  { return f.render(f.theme.Header, s) }
func (f *Formatter) FormatSuccess(s string) string { return f.render(f.theme.Success, s) }
func (f *Formatter) FormatWarning(s string) string { return f.render(f.theme.Warning, s) }
func (f *Formatter) FormatError(s string) string   { return f.render(f.theme.Error, "Error: "+s) }
func (f *Formatter) FormatInfo(s string) string    { return f.render(f.theme.Info, s) }
func (f *Formatter) FormatDim(s string) string     { return f.render(f.theme.Dim, s) }

func (f *Formatter) countdownStyle(left string) lipgloss.Style {
	switch {
	case left == "Overdue":
		return f.theme.Overdue
	case strings.Contains(left, "minute"):
		return f.theme.Imminent
	case strings.Contains(left, "hour"):
		return f.theme.Soon
	default:
		return f.theme.Meta
	}
}

// TimeLeft formats how far away a reminder is: "3 days left",
// "2 hours left", "5 minutes left" or "Overdue".
func TimeLeft(r reminder.Reminder, now time.Time) string {
	due, err := r.DueAt()
	if err != nil {
		return ""
	}

	diff := due.Sub(now)
	if diff < 0 {
		return "Overdue"
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%d day%s left", days, plural(days))
	case hours > 0:
		return fmt.Sprintf("%d hour%s left", hours, plural(hours))
	default:
		return fmt.Sprintf("%d minute%s left", minutes, plural(minutes))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func formatDateDisplay(date string) string {
	d, err := time.ParseInLocation(reminder.DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2 2006")
}

func formatTimeDisplay(t string) string {
	parsed, err := time.Parse(reminder.TimeLayout, t)
	if err != nil {
		return t
	}
	return parsed.Format("3:04 PM")
}
