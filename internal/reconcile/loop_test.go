package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/pipeline"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
	"go.uber.org/goleak"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// fakeSource serves the candidates in statuses. during runs inside Load,
// between the generation read and the replacement.
type fakeSource struct {
	mu       sync.Mutex
	statuses map[string]string
	err      error
	during   func()
	loads    atomic.Int32
}

func (f *fakeSource) Load(context.Context) (*pipeline.View, error) {
	f.loads.Add(1)

	f.mu.Lock()
	during, err := f.during, f.err
	var cands []models.Candidate
	for id, status := range f.statuses {
		cands = append(cands, models.Candidate{ID: id, Status: status})
	}
	f.mu.Unlock()

	if during != nil {
		during()
	}
	if err != nil {
		return nil, err
	}

	tax := taxonomy.Default()
	return &pipeline.View{
		Taxonomy: tax,
		Stages:   tax.Stages(),
		Cards:    pipeline.BuildFromCandidates(tax, cands),
	}, nil
}

func (f *fakeSource) String() string { return "fake" }

func (f *fakeSource) set(id, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
}

func seededStore(t *testing.T) *pipeline.Store {
	t.Helper()
	tax := taxonomy.Default()
	store := pipeline.NewStore(tax)
	store.Replace(&pipeline.View{
		Taxonomy: tax,
		Stages:   tax.Stages(),
		Cards:    pipeline.BuildFromCandidates(tax, []models.Candidate{{ID: "1", Status: "new"}}),
	})
	return store
}

func stageOf(t *testing.T, store *pipeline.Store, id string) string {
	t.Helper()
	card, ok := store.Card(id)
	require.True(t, ok, "card %s missing", id)
	return card.Stage
}

// ============================================================================
// TICK
// ============================================================================

func TestTick_ReplacesWhenIdle(t *testing.T) {
	t.Parallel()
	store := seededStore(t)
	source := &fakeSource{statuses: map[string]string{"1": "trial_work", "2": "new"}}
	loop := New(store, source, 0)

	outcome, err := loop.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Replaced, outcome)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, taxonomy.StageTrialWork, stageOf(t, store, "candidate-1"))
}

func TestTick_SkipsWhileMoveInFlight(t *testing.T) {
	t.Parallel()
	store := seededStore(t)
	source := &fakeSource{statuses: map[string]string{"1": "rejected"}}
	loop := New(store, source, 0)

	require.True(t, store.Acquire("candidate-1"))
	outcome, err := loop.Tick(context.Background())
	store.Release("candidate-1")

	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.Zero(t, source.loads.Load(), "no fetch while a move is pending")
	assert.Equal(t, taxonomy.StageReceived, stageOf(t, store, "candidate-1"))
}

// TestTick_DiscardsFetchOverlappingMove covers a move that starts and
// resolves while the fetch is in progress: the fetched data predates the
// move and must not land.
func TestTick_DiscardsFetchOverlappingMove(t *testing.T) {
	t.Parallel()
	store := seededStore(t)
	source := &fakeSource{statuses: map[string]string{"1": "new"}}
	source.during = func() {
		require.True(t, store.Acquire("candidate-1"))
		store.Update("candidate-1", func(c *models.Card) {
			c.Stage = taxonomy.StageOffer
			c.Status = taxonomy.StatusOfferExtended
		})
		store.Release("candidate-1")
	}
	loop := New(store, source, 0)

	outcome, err := loop.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, taxonomy.StageOffer, stageOf(t, store, "candidate-1"))

	// The next tick sees no move and lands
	source.during = nil
	source.set("1", "offer_extended")
	outcome, err = loop.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Replaced, outcome)
}

func TestTick_FailureKeepsStore(t *testing.T) {
	t.Parallel()
	store := seededStore(t)
	before := store.Cards()
	source := &fakeSource{statuses: map[string]string{}, err: errors.New("502 bad gateway")}
	loop := New(store, source, 0)

	outcome, err := loop.Tick(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Failed, outcome)
	assert.Equal(t, before, store.Cards())
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

// ============================================================================
// LIFECYCLE
// ============================================================================

func TestLoop_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := seededStore(t)
	source := &fakeSource{statuses: map[string]string{"1": "interviewed"}}

	var refreshes atomic.Int32
	loop := New(store, source, 5*time.Millisecond, OnRefresh(func(o Outcome, err error) {
		refreshes.Add(1)
	}))

	loop.Start(context.Background())
	loop.Start(context.Background()) // second start is ignored
	assert.True(t, loop.Running())

	require.Eventually(t, func() bool {
		return refreshes.Load() >= 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, taxonomy.StageFirstInterview, stageOf(t, store, "candidate-1"))

	loop.Stop()
	assert.False(t, loop.Running())

	loads := source.loads.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, loads, source.loads.Load(), "no tick after Stop")

	loop.Stop()
}

func TestLoop_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := seededStore(t)
	source := &fakeSource{statuses: map[string]string{"1": "new"}}
	loop := New(store, source, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)
	cancel()
	loop.Stop()
}

func TestLoop_ZeroIntervalNeverStarts(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &fakeSource{statuses: map[string]string{}}
	loop := New(seededStore(t), source, 0)
	loop.Start(context.Background())

	assert.False(t, loop.Running())
	loop.Stop()
	assert.Zero(t, source.loads.Load())
}
