// Package tui is the interactive pipeline board: keyboard drag and drop
// over the stage columns of one open board.
package tui

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/config"
	"github.com/thenoetrevino/hirepipe/internal/drag"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/reconcile"
	"github.com/thenoetrevino/hirepipe/internal/render"
)

// RefreshMsg is sent after every background reconciliation
type RefreshMsg struct {
	Outcome reconcile.Outcome
	Err     error
}

// Refreshes carries reconciliation results from the loop goroutine into
// the program
type Refreshes chan RefreshMsg

// NewRefreshes creates the channel handed to both the board and the model
func NewRefreshes() Refreshes {
	return make(Refreshes, 1)
}

// Handler returns the callback to register with app.WithRefreshHandler.
// A result is dropped when the previous one has not been consumed yet.
func (r Refreshes) Handler() reconcile.RefreshFunc {
	return func(outcome reconcile.Outcome, err error) {
		select {
		case r <- RefreshMsg{Outcome: outcome, Err: err}:
		default:
			slog.Debug("dropped refresh notification", "outcome", outcome.String())
		}
	}
}

// moveResultMsg reports the end of a persistence call started by the board
type moveResultMsg struct {
	cardID   string
	archived bool
	err      error
}

// refreshedMsg reports a refresh requested with the refresh key
type refreshedMsg struct {
	outcome reconcile.Outcome
	err     error
}

type notice struct {
	level   render.Level
	message string
}

// Model is the board's tea.Model
type Model struct {
	ctx       context.Context
	board     *app.Board
	refreshes Refreshes
	keys      keyMap
	help      help.Model
	session   drag.Session

	col, row      int
	width, height int
	notice        *notice
	now           func() time.Time
}

// New creates the model for an open board. refreshes may be nil when the
// board does not poll.
func New(ctx context.Context, board *app.Board, km config.KeyMappings, refreshes Refreshes) *Model {
	return &Model{
		ctx:       ctx,
		board:     board,
		refreshes: refreshes,
		keys:      newKeyMap(km),
		help:      help.New(),
		now:       time.Now,
	}
}

// Init starts listening for reconciliation results
func (m *Model) Init() tea.Cmd {
	return m.waitForRefresh()
}

// waitForRefresh returns a command that blocks until the next
// reconciliation result. It is re-armed after every RefreshMsg.
func (m *Model) waitForRefresh() tea.Cmd {
	if m.refreshes == nil {
		return nil
	}
	ctx, ch := m.ctx, m.refreshes
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

// selectedCard returns the card under the cursor
func (m *Model) selectedCard() (models.Card, bool) {
	columns := m.board.Store.Columns()
	if m.col >= len(columns) {
		return models.Card{}, false
	}
	cards := columns[m.col].Cards
	if m.row < 0 || m.row >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.row], true
}

// stageAt returns the stage name of column i
func (m *Model) stageAt(i int) string {
	columns := m.board.Store.Columns()
	if i < 0 || i >= len(columns) {
		return ""
	}
	return columns[i].Stage.Name
}

// clamp keeps the cursor inside the current board after it changed
func (m *Model) clamp() {
	columns := m.board.Store.Columns()
	if len(columns) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = min(max(m.col, 0), len(columns)-1)
	m.row = min(max(m.row, 0), max(len(columns[m.col].Cards)-1, 0))
}

// follow moves the cursor onto cardID wherever it is now
func (m *Model) follow(cardID string) {
	for i, col := range m.board.Store.Columns() {
		for j, c := range col.Cards {
			if c.ID == cardID {
				m.col, m.row = i, j
				return
			}
		}
	}
	m.clamp()
}

func (m *Model) info(msg string) {
	m.notice = &notice{level: render.LevelInfo, message: msg}
}

func (m *Model) fail(msg string) {
	m.notice = &notice{level: render.LevelError, message: msg}
}
