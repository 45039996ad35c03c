package render

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
)

// Level is the severity of a notice
type Level int

const (
	// LevelInfo is used for confirmations and refresh results
	LevelInfo Level = iota
	// LevelError is used for failed moves
	LevelError
)

// Notice renders a notification banner. Messages wider than width wrap.
func Notice(level Level, message string, width int) string {
	fg, bg, icon := InfoFg, InfoBg, "ℹ"
	if level == LevelError {
		fg, bg, icon = ErrorFg, ErrorBg, "✖"
	}
	if width > 4 {
		message = wordwrap.String(message, width-4)
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Bold(true).
		Padding(0, 1).
		Render(icon + " " + message)
}
