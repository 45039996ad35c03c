package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/hirepipe/internal/render"
)

// Header, notice and help lines
const chromeHeight = 4

// View renders the board
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	store := m.board.Store
	header := render.TitleStyle.Render(m.board.Source()) +
		render.SubtleStyle.Render(fmt.Sprintf("  %d candidates", store.Len()))
	if m.session.Active() {
		header += render.SubtleStyle.Render("  · moving, " + m.keys.Drop.Help().Key + " to drop")
	}

	board := render.Board(store.Columns(), render.BoardState{
		SelectedColumn: m.col,
		SelectedCard:   m.row,
		HeldCardID:     m.session.CardID(),
		HoverStage:     m.session.Hovered(),
		Pending:        store.InFlight,
		Width:          m.width,
		Height:         max(m.height-chromeHeight, 0),
		Now:            m.now(),
	})

	parts := []string{header, board}
	if m.notice != nil {
		parts = append(parts, render.Notice(m.notice.level, m.notice.message, m.width))
	}
	parts = append(parts, m.help.View(m.keys))

	view.Content = lipgloss.JoinVertical(lipgloss.Left, parts...)
	return view
}
