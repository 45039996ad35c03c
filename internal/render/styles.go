// Package render draws boards, cards and notices with lipgloss.
// Everything here is a pure function of its arguments.
package render

import "charm.land/lipgloss/v2"

// Palette
const (
	Highlight      = "#7c3aed"
	Subtle         = "#6b7280"
	Normal         = "#e5e7eb"
	SelectedBorder = "#a78bfa"
	SelectedBg     = "#312e81"
	CardBg         = "#1f2937"
	HoverBorder    = "#10b981"
	InfoFg         = "#dbeafe"
	InfoBg         = "#1e3a8a"
	ErrorFg        = "#fee2e2"
	ErrorBg        = "#7f1d1d"
)

// Layout
const (
	ColumnWidth = 34
	CardWidth   = 30

	// CardHeight is the rendered height of one card including its border
	CardHeight = 5
)

// These are cached to avoid recomputing on every redraw.
var (
	// ColumnStyle defines the appearance of stage columns
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Subtle)).
			PaddingLeft(1).
			PaddingRight(1).
			Width(ColumnWidth)

	// CardStyle defines the appearance of a card
	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(CardBg)).
			Padding(0, 1).
			Width(CardWidth)

	// TitleStyle defines column headers
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// SubtleStyle renders secondary text
	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Subtle))

	// EmptyStyle renders the placeholder of an empty column
	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Subtle)).
			Italic(true).
			Padding(1, 0)

	// IndicatorStyle renders scroll indicators
	IndicatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Subtle)).
			Align(lipgloss.Center)
)
