package pipeline

import (
	"slices"

	"github.com/thenoetrevino/hirepipe/internal/models"
)

// Snapshot is an immutable copy of the full card collection taken right
// before an optimistic mutation. It is only used to roll that mutation back.
type Snapshot struct {
	order []string
	cards map[string]*models.Card
}

// Snapshot copies every card in the store
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		order: make([]string, 0, len(s.cards)),
		cards: make(map[string]*models.Card, len(s.cards)),
	}
	for _, c := range s.cards {
		snap.order = append(snap.order, c.ID)
		snap.cards[c.ID] = c.Clone()
	}
	return snap
}

// Len returns the number of cards captured
func (snap *Snapshot) Len() int {
	return len(snap.order)
}

// Card returns a copy of the captured card with id
func (snap *Snapshot) Card(id string) (models.Card, bool) {
	c, ok := snap.cards[id]
	if !ok {
		return models.Card{}, false
	}
	return *c.Clone(), true
}

// Restore puts the listed cards back to their captured state.
// Cards removed since the snapshot are reinserted at their captured
// position; cards not listed keep whatever state they have now, so a
// rollback never clobbers a concurrent move on another card.
func (s *Store) Restore(snap *Snapshot, ids ...string) {
	if snap == nil || len(ids) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[string]*models.Card, len(s.cards))
	for _, c := range s.cards {
		current[c.ID] = c
	}

	rebuilt := make([]*models.Card, 0, len(s.cards)+len(ids))
	placed := make(map[string]bool, len(s.cards))
	for _, id := range snap.order {
		restore := slices.Contains(ids, id)
		if cur, ok := current[id]; ok {
			if restore {
				*cur = *snap.cards[id].Clone()
			}
			rebuilt = append(rebuilt, cur)
			placed[id] = true
		} else if restore {
			rebuilt = append(rebuilt, snap.cards[id].Clone())
			placed[id] = true
		}
	}
	for _, c := range s.cards {
		if !placed[c.ID] {
			rebuilt = append(rebuilt, c)
		}
	}
	s.cards = rebuilt
}
