package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/hirepipe/internal/drag"
	"github.com/thenoetrevino/hirepipe/internal/reconcile"
	"github.com/thenoetrevino/hirepipe/internal/services/move"
)

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Graceful shutdown
	select {
	case <-m.ctx.Done():
		return m, tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case moveResultMsg:
		m.handleMoveResult(msg)
		return m, nil

	case RefreshMsg:
		m.handleRefresh(msg.Outcome, msg.Err, false)
		return m, m.waitForRefresh()

	case refreshedMsg:
		m.handleRefresh(msg.outcome, msg.err, true)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Cancel()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.PrevStage):
		m.shiftColumn(-1)
		return nil

	case key.Matches(msg, m.keys.NextStage):
		m.shiftColumn(1)
		return nil

	case key.Matches(msg, m.keys.PrevCard):
		if !m.session.Active() {
			m.row--
			m.clamp()
		}
		return nil

	case key.Matches(msg, m.keys.NextCard):
		if !m.session.Active() {
			m.row++
			m.clamp()
		}
		return nil

	case key.Matches(msg, m.keys.PickUp):
		m.pickUp()
		return nil

	case key.Matches(msg, m.keys.Drop):
		return m.drop()

	case key.Matches(msg, m.keys.CancelDrag):
		if m.session.Active() {
			cardID := m.session.CardID()
			m.session.Cancel()
			m.follow(cardID)
			m.info("move cancelled")
		}
		return nil

	case key.Matches(msg, m.keys.Archive):
		if m.session.Active() {
			return nil
		}
		return m.archive()

	case key.Matches(msg, m.keys.Refresh):
		ctx, board := m.ctx, m.board
		return func() tea.Msg {
			outcome, err := board.Refresh(ctx)
			return refreshedMsg{outcome: outcome, err: err}
		}
	}
	return nil
}

// shiftColumn moves the cursor one stage sideways. While a card is held the
// card hovers over the new stage.
func (m *Model) shiftColumn(delta int) {
	columns := m.board.Store.Columns()
	next := m.col + delta
	if next < 0 || next >= len(columns) {
		return
	}
	m.col = next
	m.row = 0

	if m.session.Active() {
		if err := m.session.Enter(columns[next].Stage.Name); err != nil {
			slog.Debug("drag enter rejected", "error", err)
		}
		return
	}
	m.clamp()
}

// pickUp starts a drag gesture on the selected card, hovering its own stage
func (m *Model) pickUp() {
	if m.session.Active() {
		return
	}
	card, ok := m.selectedCard()
	if !ok {
		return
	}
	if m.board.Store.InFlight(card.ID) {
		m.fail(move.Describe(move.ErrMoveInProgress))
		return
	}
	if err := m.session.Start(card.ID, card.Stage); err != nil {
		slog.Debug("drag start rejected", "error", err)
		return
	}
	if err := m.session.Enter(m.stageAt(m.col)); err != nil {
		slog.Debug("drag enter rejected", "error", err)
	}
	m.notice = nil
}

// drop ends the gesture. The move is applied to the store immediately and
// the returned command persists it.
func (m *Model) drop() tea.Cmd {
	if !m.session.Active() {
		return nil
	}
	cardID := m.session.CardID()
	intent, result := m.session.Drop()
	if result != drag.Dropped {
		m.follow(cardID)
		return nil
	}

	pending, err := m.board.Mover.Begin(intent.CardID, intent.ToStage)
	if err != nil {
		m.fail(move.Describe(err))
		m.follow(cardID)
		return nil
	}
	m.follow(cardID)
	if pending == nil {
		return nil
	}

	ctx := m.ctx
	return func() tea.Msg {
		return moveResultMsg{cardID: cardID, err: pending.Commit(ctx)}
	}
}

// archive removes the selected candidate optimistically
func (m *Model) archive() tea.Cmd {
	card, ok := m.selectedCard()
	if !ok {
		return nil
	}
	pending, err := m.board.Mover.BeginArchive(card.ID)
	if err != nil {
		m.fail(move.Describe(err))
		return nil
	}
	m.clamp()

	ctx := m.ctx
	return func() tea.Msg {
		return moveResultMsg{cardID: card.ID, archived: true, err: pending.Commit(ctx)}
	}
}

func (m *Model) handleMoveResult(msg moveResultMsg) {
	if msg.err != nil {
		if errors.Is(msg.err, move.ErrAuthRequired) {
			slog.Warn("session expired", "card", msg.cardID)
		}
		m.fail(move.Describe(msg.err))
		if !m.session.Active() {
			m.follow(msg.cardID)
		}
		return
	}
	if msg.archived {
		m.info("candidate archived")
	}
	m.clamp()
}

func (m *Model) handleRefresh(outcome reconcile.Outcome, err error, manual bool) {
	switch outcome {
	case reconcile.Failed:
		m.fail(fmt.Sprintf("refresh failed: %v", err))
	case reconcile.Replaced:
		if manual {
			m.info("board refreshed")
		}
	case reconcile.Skipped:
		if manual {
			m.info("refresh skipped while a move is saving")
		}
	}
	if !m.session.Active() {
		m.clamp()
	}
}
