package styles

import "github.com/charmbracelet/lipgloss"

// Styles shared by every palette
var (
	Title = lipgloss.NewStyle().
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F5F")).
		Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F"))

	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9"))

	Editor = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder())
)
