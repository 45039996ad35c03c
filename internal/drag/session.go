// Package drag tracks one drag gesture at a time and turns a completed
// gesture into a single move intent.
//
// The session has no side effects: the caller hands the intent returned by
// Drop to the move coordinator.
package drag

import (
	"errors"
	"fmt"
	"slices"

	"github.com/thenoetrevino/hirepipe/internal/models"
)

// State is the phase of the current gesture
type State int

const (
	// Idle means no card is held
	Idle State = iota
	// Dragging means a card is held outside every drop target
	Dragging
	// Hovering means a card is held over a stage
	Hovering
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is returned for events the current state does not accept
var ErrInvalidTransition = errors.New("invalid drag transition")

// Result says how a gesture ended
type Result int

const (
	// Dropped means the card was released over a stage and an intent was emitted
	Dropped Result = iota
	// Cancelled means the gesture ended without an intent
	Cancelled
)

// Session is the drag state machine. The zero value is an idle session.
// Dropped and Cancelled are momentary: both return the session to Idle.
type Session struct {
	state     State
	cardID    string
	fromStage string
	stage     string
}

// State returns the current phase
func (s *Session) State() State {
	return s.state
}

// Active reports whether a card is held
func (s *Session) Active() bool {
	return s.state != Idle
}

// CardID returns the held card, or "" when idle
func (s *Session) CardID() string {
	return s.cardID
}

// FromStage returns the stage the held card was picked up from
func (s *Session) FromStage() string {
	return s.fromStage
}

// Hovered returns the stage under the held card, or "" when not hovering
func (s *Session) Hovered() string {
	return s.stage
}

// Start picks up cardID from fromStage
func (s *Session) Start(cardID, fromStage string) error {
	if cardID == "" {
		return models.ErrEmptyCardID
	}
	if err := s.check(eventStart); err != nil {
		return err
	}
	s.state = Dragging
	s.cardID = cardID
	s.fromStage = fromStage
	s.stage = ""
	return nil
}

// Enter moves the held card over stage. Entering another stage while
// hovering replaces the hovered stage.
func (s *Session) Enter(stage string) error {
	if stage == "" {
		return models.ErrEmptyStage
	}
	if err := s.check(eventEnter); err != nil {
		return err
	}
	s.state = Hovering
	s.stage = stage
	return nil
}

// Leave moves the held card off the hovered stage
func (s *Session) Leave() error {
	if err := s.check(eventLeave); err != nil {
		return err
	}
	s.state = Dragging
	s.stage = ""
	return nil
}

// Drop releases the held card. Over a stage it returns the intent and
// Dropped; anywhere else it returns Cancelled. The session is idle
// afterwards either way, so a gesture yields at most one intent.
func (s *Session) Drop() (models.MoveIntent, Result) {
	defer s.reset()

	if s.state != Hovering || s.cardID == "" {
		return models.MoveIntent{}, Cancelled
	}
	return models.MoveIntent{
		CardID:    s.cardID,
		FromStage: s.fromStage,
		ToStage:   s.stage,
	}, Dropped
}

// Cancel abandons the gesture without an intent
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	*s = Session{}
}

// event is an input of the state machine
type event int

const (
	eventStart event = iota
	eventEnter
	eventLeave
)

func (e event) String() string {
	switch e {
	case eventStart:
		return "start"
	case eventEnter:
		return "enter"
	case eventLeave:
		return "leave"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// transitions lists the states each event is accepted in
var transitions = map[event][]State{
	eventStart: {Idle},
	eventEnter: {Dragging, Hovering},
	eventLeave: {Hovering},
}

func (s *Session) check(e event) error {
	if !slices.Contains(transitions[e], s.state) {
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, e, s.state)
	}
	return nil
}
