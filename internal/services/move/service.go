// Package move coordinates optimistic card moves: patch the local board,
// persist the change, roll back on failure.
package move

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/pipeline"
	"github.com/thenoetrevino/hirepipe/internal/remote"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// Persister writes moves to the authoritative store
type Persister interface {
	UpdateApplicationStage(ctx context.Context, applicationID, stage string) error
	UpdateCandidateStatus(ctx context.Context, candidateID, status string) error
}

// Coordinator applies moves to one board's store.
// Moves on different cards may run concurrently; a second move on a card
// whose first move has not resolved is rejected with ErrMoveInProgress.
type Coordinator struct {
	store     *pipeline.Store
	persister Persister
	timeout   time.Duration
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithTimeout bounds each persistence call. Zero disables the bound.
// A hung call otherwise blocks reconciliation for the whole board.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// NewCoordinator creates a coordinator for store
func NewCoordinator(store *pipeline.Store, persister Persister, opts ...Option) *Coordinator {
	c := &Coordinator{store: store, persister: persister}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pending is an optimistic change already visible in the store whose
// persistence call has not been made. Commit must be called exactly once;
// the card stays locked against other moves and reconciliation until then.
type Pending struct {
	c        *Coordinator
	card     models.Card
	toStage  string
	snap     *pipeline.Snapshot
	restore  []string
	tokens   []string
	persist  func(ctx context.Context) error
	generic  string
	once     sync.Once
	archived bool
}

// CardID returns the card the change applies to
func (p *Pending) CardID() string {
	return p.card.ID
}

// Apply consumes a drag intent
func (c *Coordinator) Apply(ctx context.Context, intent models.MoveIntent) error {
	return c.Move(ctx, intent.CardID, intent.ToStage)
}

// Move moves a card to toStage.
//
// The change is visible in the store before the persistence call returns.
// On failure the card is restored from a snapshot and a *FailedError is
// returned. Moving a card to its current stage is a no-op.
func (c *Coordinator) Move(ctx context.Context, cardID, toStage string) error {
	p, err := c.Begin(cardID, toStage)
	if err != nil || p == nil {
		return err
	}
	return p.Commit(ctx)
}

// Begin applies a move to the store without persisting it.
// Returns a nil Pending and nil error when the card is already in toStage.
func (c *Coordinator) Begin(cardID, toStage string) (*Pending, error) {
	if toStage == "" {
		return nil, models.ErrEmptyStage
	}

	card, ok := c.store.Card(cardID)
	if !ok {
		return nil, ErrCardNotFound
	}
	if c.store.InFlight(cardID) {
		return nil, ErrMoveInProgress
	}
	if card.Stage == toStage {
		return nil, nil
	}
	if !c.store.Acquire(cardID) {
		return nil, ErrMoveInProgress
	}

	// Re-read under the token: a reconciliation may have landed in between
	card, ok = c.store.Card(cardID)
	if !ok {
		c.store.Release(cardID)
		return nil, ErrCardNotFound
	}
	if card.Stage == toStage {
		c.store.Release(cardID)
		return nil, nil
	}

	newStatus := card.Status
	if card.Kind == models.KindCandidate {
		if status, ok := c.store.Taxonomy().StatusForStage(toStage); ok {
			newStatus = status
		}
	}

	snap := c.store.Snapshot()
	c.store.Update(cardID, func(cur *models.Card) {
		cur.Stage = toStage
		if cur.Kind == models.KindCandidate {
			cur.Status = newStatus
		}
	})

	p := &Pending{
		c:       c,
		card:    card,
		toStage: toStage,
		snap:    snap,
		restore: []string{cardID},
		tokens:  []string{cardID},
		generic: reasonFor(card.Kind),
	}
	switch card.Kind {
	case models.KindCandidate:
		p.persist = func(ctx context.Context) error {
			return c.persister.UpdateCandidateStatus(ctx, card.SourceID(), newStatus)
		}
	default:
		p.persist = func(ctx context.Context) error {
			return c.persister.UpdateApplicationStage(ctx, card.SourceID(), toStage)
		}
	}
	return p, nil
}

// Archive removes a candidate from the board and marks it archived.
// Every card of the same candidate disappears; all of them come back if
// the call fails.
func (c *Coordinator) Archive(ctx context.Context, cardID string) error {
	p, err := c.BeginArchive(cardID)
	if err != nil {
		return err
	}
	return p.Commit(ctx)
}

// BeginArchive removes the candidate's cards from the store without
// persisting the archive
func (c *Coordinator) BeginArchive(cardID string) (*Pending, error) {
	card, ok := c.store.Card(cardID)
	if !ok {
		return nil, ErrCardNotFound
	}
	candidateID := card.Candidate.ID
	if card.Kind == models.KindCandidate {
		candidateID = card.SourceID()
	}
	if candidateID == "" {
		return nil, ErrNoCandidate
	}
	if !c.store.Acquire(cardID) {
		return nil, ErrMoveInProgress
	}

	// Sibling cards of the candidate are locked too, so a failing move on
	// one of them cannot restore it after the archive
	held := []string{cardID}
	for _, other := range c.store.Cards() {
		if other.ID == cardID || other.Candidate.ID != candidateID {
			continue
		}
		if !c.store.Acquire(other.ID) {
			c.release(held)
			return nil, ErrMoveInProgress
		}
		held = append(held, other.ID)
	}

	snap := c.store.Snapshot()
	removed := c.store.Remove(func(other models.Card) bool {
		return slices.Contains(held, other.ID)
	})

	return &Pending{
		c:        c,
		card:     card,
		snap:     snap,
		restore:  removed,
		tokens:   held,
		generic:  reasonArchive,
		archived: true,
		persist: func(ctx context.Context) error {
			return c.persister.UpdateCandidateStatus(ctx, candidateID, taxonomy.StatusArchived)
		},
	}, nil
}

// Commit makes the persistence call. On failure the store is rolled back
// and a *FailedError is returned. The card tokens are released either way.
// Calls after the first return nil.
func (p *Pending) Commit(ctx context.Context) error {
	var err error
	p.once.Do(func() {
		err = p.commit(ctx)
	})
	return err
}

func (p *Pending) commit(ctx context.Context) error {
	c := p.c
	defer c.release(p.tokens)

	ctx, cancel := c.bound(ctx)
	defer cancel()

	if err := p.persist(ctx); err != nil {
		c.store.Restore(p.snap, p.restore...)
		failed := newFailedError(p.card, err, p.generic)
		if p.archived {
			slog.Error("failed to archive candidate",
				"card", p.card.ID,
				"candidate", p.card.Candidate.ID,
				"status_code", failed.StatusCode,
				"error", err,
			)
		} else {
			slog.Error("failed to move card",
				"card", p.card.ID,
				"kind", p.card.Kind.String(),
				"from", p.card.Stage,
				"to", p.toStage,
				"status_code", failed.StatusCode,
				"error", err,
			)
		}
		return failed
	}

	if p.archived {
		slog.Info("candidate archived", "card", p.card.ID, "cards", len(p.restore))
	} else {
		slog.Info("card moved", "card", p.card.ID, "from", p.card.Stage, "to", p.toStage)
	}
	return nil
}

func (c *Coordinator) release(ids []string) {
	for _, id := range ids {
		c.store.Release(id)
	}
}

func (c *Coordinator) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func reasonFor(kind models.CardKind) string {
	if kind == models.KindCandidate {
		return reasonCandidate
	}
	return reasonApplication
}

func newFailedError(card models.Card, err error, generic string) *FailedError {
	failed := &FailedError{CardID: card.ID, Kind: card.Kind, Err: err}

	var apiErr *remote.APIError
	switch {
	case errors.As(err, &apiErr):
		failed.StatusCode = apiErr.StatusCode
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			failed.Reason = reasonAuth
		case apiErr.Message != "":
			failed.Reason = apiErr.Message
		default:
			failed.Reason = generic
		}
	default:
		failed.Reason = reasonNetwork
	}
	return failed
}
