package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/config"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/reconcile"
	"github.com/thenoetrevino/hirepipe/internal/remote"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type fakeAPI struct {
	mu         sync.Mutex
	candidates []models.Candidate
	writeErr   error
	writes     []string
}

func (f *fakeAPI) ListApplications(context.Context, string, string) ([]models.Application, error) {
	return nil, nil
}

func (f *fakeAPI) ListStages(context.Context, string, string) ([]models.StageDefinition, error) {
	return nil, nil
}

func (f *fakeAPI) ListCandidates(context.Context, string) ([]models.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Candidate(nil), f.candidates...), nil
}

func (f *fakeAPI) UpdateApplicationStage(_ context.Context, id, stage string) error {
	return f.record(id + "=" + stage)
}

func (f *fakeAPI) UpdateCandidateStatus(_ context.Context, id, status string) error {
	return f.record(id + "=" + status)
}

func (f *fakeAPI) record(w string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, w)
	return f.writeErr
}

func (f *fakeAPI) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func setupTestModel(t *testing.T, api *fakeAPI) *Model {
	t.Helper()
	if api.candidates == nil {
		api.candidates = []models.Candidate{
			{ID: "1", Status: taxonomy.StatusNew, FirstName: "Anna", LastName: "Berger"},
			{ID: "2", Status: taxonomy.StatusFirstInterview, FirstName: "Jonas", LastName: "Weber"},
		}
	}
	board, err := app.OpenBoard(context.Background(), api, "p1", app.WithRefreshInterval(0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = board.Close() })

	m := New(context.Background(), board, config.DefaultKeyMappings(), NewRefreshes())
	m.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	return m
}

func press(m *Model, keys ...tea.Key) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(tea.KeyPressMsg(k))
	}
	return cmd
}

var (
	keySpace = tea.Key{Code: tea.KeySpace, Text: " "}
	keyEnter = tea.Key{Code: tea.KeyEnter}
	keyEsc   = tea.Key{Code: tea.KeyEscape}
	keyRight = tea.Key{Code: 'l', Text: "l"}
	keyLeft  = tea.Key{Code: 'h', Text: "h"}
	keyA     = tea.Key{Code: 'a', Text: "a"}
	keyQ     = tea.Key{Code: 'q', Text: "q"}
)

func stageOf(t *testing.T, m *Model, cardID string) string {
	t.Helper()
	card, ok := m.board.Store.Card(cardID)
	require.True(t, ok, "card %s not on board", cardID)
	return card.Stage
}

// ============================================================================
// DRAG AND DROP
// ============================================================================

func TestDragDrop_MovesCardOptimistically(t *testing.T) {
	api := &fakeAPI{}
	m := setupTestModel(t, api)
	id := models.CandidateCardID("1")

	cmd := press(m, keySpace, keyRight, keyEnter)
	require.NotNil(t, cmd)

	// Visible before the write happened
	assert.Equal(t, taxonomy.StageFirstInterview, stageOf(t, m, id))
	assert.True(t, m.board.Store.InFlight(id))
	assert.Empty(t, api.Writes())
	assert.False(t, m.session.Active())
	assert.Equal(t, 1, m.col)

	m.Update(cmd())
	assert.Equal(t, []string{"1=first_interview"}, api.Writes())
	assert.False(t, m.board.Store.InFlight(id))
	assert.Nil(t, m.notice)
}

func TestDragDrop_FailureRollsBack(t *testing.T) {
	api := &fakeAPI{writeErr: &remote.APIError{StatusCode: 500, Message: "db down"}}
	m := setupTestModel(t, api)
	id := models.CandidateCardID("1")

	cmd := press(m, keySpace, keyRight, keyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, taxonomy.StageReceived, stageOf(t, m, id))
	require.NotNil(t, m.notice)
	assert.Equal(t, "db down", m.notice.message)
	assert.Equal(t, 0, m.col, "cursor follows the card back")
}

func TestDragDrop_OwnStageIsNoOp(t *testing.T) {
	api := &fakeAPI{}
	m := setupTestModel(t, api)

	cmd := press(m, keySpace, keyRight, keyLeft, keyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, taxonomy.StageReceived, stageOf(t, m, models.CandidateCardID("1")))
	assert.Empty(t, api.Writes())
}

func TestDragDrop_CancelKeepsCard(t *testing.T) {
	api := &fakeAPI{}
	m := setupTestModel(t, api)

	cmd := press(m, keySpace, keyRight, keyEsc)
	assert.Nil(t, cmd)
	assert.False(t, m.session.Active())
	assert.Equal(t, taxonomy.StageReceived, stageOf(t, m, models.CandidateCardID("1")))
	assert.Equal(t, 0, m.col)
	require.NotNil(t, m.notice)
	assert.Equal(t, "move cancelled", m.notice.message)

	// Drop without a held card does nothing
	assert.Nil(t, press(m, keyEnter))
	assert.Empty(t, api.Writes())
}

func TestPickUp_RejectedWhileSaving(t *testing.T) {
	m := setupTestModel(t, &fakeAPI{})

	cmd := press(m, keySpace, keyRight, keyEnter)
	require.NotNil(t, cmd)

	// Cursor followed the card; it is still saving
	press(m, keySpace)
	assert.False(t, m.session.Active())
	require.NotNil(t, m.notice)
	assert.Equal(t, "card is still being moved", m.notice.message)

	m.Update(cmd())
}

// ============================================================================
// ARCHIVE, REFRESH, QUIT
// ============================================================================

func TestArchive_RemovesCard(t *testing.T) {
	api := &fakeAPI{}
	m := setupTestModel(t, api)

	cmd := press(m, keyA)
	require.NotNil(t, cmd)
	_, ok := m.board.Store.Card(models.CandidateCardID("1"))
	assert.False(t, ok)

	m.Update(cmd())
	assert.Equal(t, []string{"1=archived"}, api.Writes())
	require.NotNil(t, m.notice)
	assert.Equal(t, "candidate archived", m.notice.message)
}

func TestRefreshMsg_FailureShowsNotice(t *testing.T) {
	m := setupTestModel(t, &fakeAPI{})

	_, cmd := m.Update(RefreshMsg{Outcome: reconcile.Failed, Err: errors.New("timeout")})
	assert.NotNil(t, cmd, "listener is re-armed")
	require.NotNil(t, m.notice)
	assert.Contains(t, m.notice.message, "timeout")

	m.notice = nil
	m.Update(RefreshMsg{Outcome: reconcile.Replaced})
	assert.Nil(t, m.notice, "background refreshes are silent")
}

func TestRefreshes_HandlerNeverBlocks(t *testing.T) {
	r := NewRefreshes()
	handler := r.Handler()

	handler(reconcile.Replaced, nil)
	handler(reconcile.Failed, errors.New("dropped"))

	msg := <-r
	assert.Equal(t, reconcile.Replaced, msg.Outcome)
	assert.Empty(t, r)
}

func TestQuit(t *testing.T) {
	m := setupTestModel(t, &fakeAPI{})

	cmd := press(m, keyQ)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// ============================================================================
// VIEW
// ============================================================================

func TestView(t *testing.T) {
	m := setupTestModel(t, &fakeAPI{})

	out := ansi.Strip(m.View().Content)
	assert.Contains(t, out, "2 candidates")
	assert.Contains(t, out, taxonomy.StageReceived+" (1)")
	assert.Contains(t, out, "Anna Berger")
	assert.True(t, m.View().AltScreen)

	press(m, keySpace, keyRight)
	out = ansi.Strip(m.View().Content)
	assert.Contains(t, out, "moving")
	assert.Contains(t, out, "⇢")
}

func TestView_LoadingBeforeResize(t *testing.T) {
	m := setupTestModel(t, &fakeAPI{})
	m.width = 0
	assert.Equal(t, "Loading...", m.View().Content)
}
