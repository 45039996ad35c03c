// Package reconcile periodically re-fetches a board from the server and
// replaces the local view, unless a move is pending.
package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/hirepipe/internal/pipeline"
)

// DefaultInterval matches the refresh rate of the web board
const DefaultInterval = 10 * time.Second

// Outcome reports what one reconciliation tick did
type Outcome int

const (
	// Skipped means a move was in flight before or during the fetch
	Skipped Outcome = iota
	// Replaced means the store now holds the fetched view
	Replaced
	// Failed means the fetch failed and the store was left as is
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Replaced:
		return "replaced"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RefreshFunc is called after every tick
type RefreshFunc func(Outcome, error)

// Loop keeps one store in sync with its source
type Loop struct {
	store     *pipeline.Store
	source    pipeline.Source
	interval  time.Duration
	onRefresh RefreshFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Loop
type Option func(*Loop)

// OnRefresh registers fn to run after each tick, from the loop goroutine
func OnRefresh(fn RefreshFunc) Option {
	return func(l *Loop) {
		l.onRefresh = fn
	}
}

// New creates a stopped loop. An interval of zero or less disables the
// timer; Tick still works for manual refreshes.
func New(store *pipeline.Store, source pipeline.Source, interval time.Duration, opts ...Option) *Loop {
	l := &Loop{
		store:    store,
		source:   source,
		interval: interval,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the timer goroutine. Calling Start on a running loop
// does nothing.
func (l *Loop) Start(ctx context.Context) {
	if l.interval <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
}

// Stop cancels the timer and waits for an in-progress tick to return.
// No tick starts after Stop returns. Safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the timer goroutine is active
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done != nil
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	slog.Debug("reconciliation started", "source", l.source.String(), "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Debug("reconciliation stopped", "source", l.source.String())
			return
		case <-ticker.C:
			outcome, err := l.Tick(ctx)
			if ctx.Err() != nil {
				return
			}
			if l.onRefresh != nil {
				l.onRefresh(outcome, err)
			}
		}
	}
}

// Tick runs one reconciliation: fetch the board and replace the store,
// unless a move was pending at any point during the fetch.
func (l *Loop) Tick(ctx context.Context) (Outcome, error) {
	if l.store.Busy() {
		slog.Debug("reconciliation skipped, move in flight", "source", l.source.String())
		return Skipped, nil
	}

	gen := l.store.Generation()
	view, err := l.source.Load(ctx)
	if err != nil {
		slog.Warn("reconciliation fetch failed", "source", l.source.String(), "error", err)
		return Failed, err
	}

	if !l.store.ReplaceIfUnchanged(gen, view) {
		slog.Debug("reconciliation discarded, move started during fetch", "source", l.source.String())
		return Skipped, nil
	}
	return Replaced, nil
}
