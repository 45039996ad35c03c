package pipeline

import (
	"slices"
	"sync"

	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// View is one freshly built board: the stages to render, the cards and the
// taxonomy that mapped them
type View struct {
	Taxonomy *taxonomy.Taxonomy
	Stages   []models.Stage
	Cards    []*models.Card
}

// Column is a stage paired with the cards currently in it.
// Derived on every call, never stored.
type Column struct {
	Stage models.Stage
	Cards []models.Card
}

// Store is the materialized view of one board session.
// All mutation goes through a single mutex; readers get copies.
//
// The store also owns the per-card move tokens. While any token is held the
// store refuses wholesale replacement, and every acquisition bumps the
// generation so a reconciliation fetch that overlapped a move is discarded.
type Store struct {
	mu         sync.Mutex
	tax        *taxonomy.Taxonomy
	stages     []models.Stage
	cards      []*models.Card
	inFlight   map[string]struct{}
	generation uint64
}

// NewStore creates an empty store using tax until the first Replace
func NewStore(tax *taxonomy.Taxonomy) *Store {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Store{
		tax:      tax,
		inFlight: make(map[string]struct{}),
	}
}

// Replace swaps in a freshly built view
func (s *Store) Replace(v *View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(v)
}

// ReplaceIfUnchanged swaps in v only if no move is in flight and none has
// started since generation gen was read. Reports whether it replaced.
func (s *Store) ReplaceIfUnchanged(gen uint64, v *View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.inFlight) > 0 || s.generation != gen {
		return false
	}
	s.replaceLocked(v)
	return true
}

func (s *Store) replaceLocked(v *View) {
	if v == nil {
		return
	}
	if v.Taxonomy != nil {
		s.tax = v.Taxonomy
	}
	s.stages = slices.Clone(v.Stages)
	s.cards = make([]*models.Card, 0, len(v.Cards))
	for _, c := range v.Cards {
		if c == nil {
			continue
		}
		s.cards = append(s.cards, c.Clone())
	}
}

// Generation returns the move generation counter
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Taxonomy returns the taxonomy of the current view
func (s *Store) Taxonomy() *taxonomy.Taxonomy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tax
}

// Stages returns the rendered stages in order
func (s *Store) Stages() []models.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.stages)
}

// Len returns the number of cards in the store
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Card returns a copy of the card with id
func (s *Store) Card(id string) (models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		return *s.cards[i].Clone(), true
	}
	return models.Card{}, false
}

// Cards returns copies of all cards in load order
func (s *Store) Cards() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, *c.Clone())
	}
	return out
}

// CardsByStage returns the cards in stage, in load order
func (s *Store) CardsByStage(stage string) []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardsByStageLocked(stage)
}

func (s *Store) cardsByStageLocked(stage string) []models.Card {
	out := []models.Card{}
	for _, c := range s.cards {
		if c.Stage == stage {
			out = append(out, *c.Clone())
		}
	}
	return out
}

// Columns projects the store into its stage columns
func (s *Store) Columns() []Column {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols := make([]Column, 0, len(s.stages))
	for _, st := range s.stages {
		cols = append(cols, Column{Stage: st, Cards: s.cardsByStageLocked(st.Name)})
	}
	return cols
}

// Unplaced returns cards whose stage is not rendered as a column
// (e.g., rejected candidates on the all-candidates board)
func (s *Store) Unplaced() []models.Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Card{}
	for _, c := range s.cards {
		if !slices.ContainsFunc(s.stages, func(st models.Stage) bool { return st.Name == c.Stage }) {
			out = append(out, *c.Clone())
		}
	}
	return out
}

// Update applies fn to the card with id in place.
// Returns false if the card does not exist.
func (s *Store) Update(id string, fn func(*models.Card)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	fn(s.cards[i])
	return true
}

// Remove drops every card matching pred and returns their ids
func (s *Store) Remove(pred func(models.Card) bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	kept := s.cards[:0]
	for _, c := range s.cards {
		if pred(*c) {
			removed = append(removed, c.ID)
			continue
		}
		kept = append(kept, c)
	}
	clear(s.cards[len(kept):])
	s.cards = kept
	return removed
}

// Acquire takes the move token for id.
// Returns false if a move for id is already in flight.
func (s *Store) Acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.inFlight[id]; held {
		return false
	}
	s.inFlight[id] = struct{}{}
	s.generation++
	return true
}

// Release returns the move token for id
func (s *Store) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// InFlight reports whether a move for id is pending
func (s *Store) InFlight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, held := s.inFlight[id]
	return held
}

// Busy reports whether any move is pending
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight) > 0
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.cards, func(c *models.Card) bool { return c.ID == id })
}
