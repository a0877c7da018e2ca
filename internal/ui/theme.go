package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named lipgloss palette. Light and dark mirror the two CSS
// themes of the original web UI.
type Theme struct {
	Name string

	Header    lipgloss.Style
	Title     lipgloss.Style
	Completed lipgloss.Style
	Tag       lipgloss.Style
	Meta      lipgloss.Style
	Dim       lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Countdown urgency classes.
	Overdue  lipgloss.Style
	Imminent lipgloss.Style
	Soon     lipgloss.Style

	Quote lipgloss.Style
	Box   lipgloss.Style
}

func LightTheme() Theme {
	return Theme{
		Name: "light",

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("25")). // Deep blue
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")). // Near black
			Bold(true),

		Completed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Medium gray
			Strikethrough(true),

		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("30")). // Teal
			Bold(true),

		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")). // Green
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("130")). // Amber
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("124")). // Dark red
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("25")),

		Overdue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("124")).
			Bold(true),

		Imminent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("130")).
			Bold(true),

		Soon: lipgloss.NewStyle().
			Foreground(lipgloss.Color("100")),

		Quote: lipgloss.NewStyle().
			Foreground(lipgloss.Color("60")).
			Italic(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("25")).
			Padding(0, 1),
	}
}

func DarkTheme() Theme {
	return Theme{
		Name: "dark",

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")). // Near white
			Bold(true),

		Completed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true),

		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // Aqua
			Bold(true),

		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Soft green
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")). // Warm yellow
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")),

		Overdue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),

		Imminent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")). // Orange
			Bold(true),

		Soon: lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")),

		Quote: lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
	}
}

// ThemeByName returns the named theme, defaulting to light.
func ThemeByName(name string) Theme {
	if name == "dark" {
		return DarkTheme()
	}
	return LightTheme()
}
