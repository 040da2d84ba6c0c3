package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles used across the list view. Kept to colors that read well on both
// dark and light terminals.
var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#61AFEF")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E5C07B"))

	doneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Faint(true)

	idStyle = lipgloss.NewStyle().
		Faint(true)

	descStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98C379"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C678DD"))
)
