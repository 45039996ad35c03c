package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/hirepipe/internal/config"
	"github.com/thenoetrevino/hirepipe/internal/pipeline"
	"github.com/thenoetrevino/hirepipe/internal/reconcile"
	"github.com/thenoetrevino/hirepipe/internal/services/move"
)

var (
	// ErrNoPractice is returned when a board is opened without a practice id
	ErrNoPractice = errors.New("practice id is required")
	// ErrBoardClosed is returned by Refresh after Close
	ErrBoardClosed = errors.New("board is closed")
)

// API is everything a board needs from the server
type API interface {
	pipeline.ApplicationLister
	pipeline.CandidateLister
	move.Persister
}

// Board holds one open pipeline view: its store, the move coordinator
// writing to it and the reconciliation loop refreshing it.
// Each view owns its own store; switching jobs means Close and OpenBoard.
type Board struct {
	// Store is the materialized view rendered by the UI
	Store *pipeline.Store

	// Mover applies moves and archives to Store
	Mover *move.Coordinator

	source pipeline.Source
	loop   *reconcile.Loop

	// mu is held shared by Refresh and exclusively by Close
	mu     sync.RWMutex
	closed bool
}

// Option is a functional option for configuring a board
type Option func(*boardConfig)

type boardConfig struct {
	jobPostingID string
	interval     time.Duration
	moveTimeout  time.Duration
	onRefresh    reconcile.RefreshFunc
}

// WithJobPosting opens the applications view of one job posting instead of
// the practice-wide candidates view
func WithJobPosting(id string) Option {
	return func(cfg *boardConfig) {
		cfg.jobPostingID = id
	}
}

// WithRefreshInterval sets the reconciliation interval; zero disables polling
func WithRefreshInterval(d time.Duration) Option {
	return func(cfg *boardConfig) {
		cfg.interval = d
	}
}

// WithMoveTimeout bounds each persistence call
func WithMoveTimeout(d time.Duration) Option {
	return func(cfg *boardConfig) {
		cfg.moveTimeout = d
	}
}

// WithRefreshHandler is called after every background reconciliation
func WithRefreshHandler(fn reconcile.RefreshFunc) Option {
	return func(cfg *boardConfig) {
		cfg.onRefresh = fn
	}
}

// OptionsFromConfig translates a loaded config into board options
func OptionsFromConfig(c *config.Config) []Option {
	return []Option{
		WithJobPosting(c.JobPostingID),
		WithRefreshInterval(c.RefreshInterval),
		WithMoveTimeout(c.MoveTimeout),
	}
}

// OpenBoard performs the initial load and returns a board whose
// reconciliation loop has not started yet
func OpenBoard(ctx context.Context, api API, practiceID string, opts ...Option) (*Board, error) {
	if practiceID == "" {
		return nil, ErrNoPractice
	}

	cfg := boardConfig{interval: reconcile.DefaultInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	var source pipeline.Source
	if cfg.jobPostingID != "" {
		source = &pipeline.ApplicationsSource{API: api, PracticeID: practiceID, JobPostingID: cfg.jobPostingID}
	} else {
		source = &pipeline.CandidatesSource{API: api, PracticeID: practiceID}
	}

	view, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	store := pipeline.NewStore(view.Taxonomy)
	store.Replace(view)

	var loopOpts []reconcile.Option
	if cfg.onRefresh != nil {
		loopOpts = append(loopOpts, reconcile.OnRefresh(cfg.onRefresh))
	}

	slog.Info("board opened", "source", source.String(), "cards", store.Len())

	return &Board{
		Store:  store,
		Mover:  move.NewCoordinator(store, api, move.WithTimeout(cfg.moveTimeout)),
		source: source,
		loop:   reconcile.New(store, source, cfg.interval, loopOpts...),
	}, nil
}

// Start begins background reconciliation
func (b *Board) Start(ctx context.Context) {
	b.loop.Start(ctx)
}

// Refresh reconciles once, outside the timer. It returns ErrBoardClosed
// without touching the store once Close has run.
func (b *Board) Refresh(ctx context.Context) (reconcile.Outcome, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return reconcile.Skipped, ErrBoardClosed
	}
	return b.loop.Tick(ctx)
}

// Source describes the query the board was built from
func (b *Board) Source() string {
	return b.source.String()
}

// Close stops reconciliation. No refresh runs after Close returns.
func (b *Board) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.loop.Stop()
	slog.Debug("board closed", "source", b.source.String())
	return nil
}
