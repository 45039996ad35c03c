package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hirepipe/internal/models"
)

func TestSession_DropEmitsOneIntent(t *testing.T) {
	t.Parallel()
	var s Session

	require.NoError(t, s.Start("A1", "Erstgespräch"))
	require.NoError(t, s.Enter("Probearbeiten"))
	require.NoError(t, s.Enter("Angebot"), "re-entering another stage while hovering")
	assert.Equal(t, Hovering, s.State())
	assert.Equal(t, "Angebot", s.Hovered())

	intent, result := s.Drop()
	assert.Equal(t, Dropped, result)
	assert.Equal(t, models.MoveIntent{CardID: "A1", FromStage: "Erstgespräch", ToStage: "Angebot"}, intent)
	assert.Equal(t, Idle, s.State())

	// A second release without a new gesture emits nothing
	_, result = s.Drop()
	assert.Equal(t, Cancelled, result)
}

func TestSession_DropOutsideTarget(t *testing.T) {
	t.Parallel()
	var s Session

	require.NoError(t, s.Start("A1", "Erstgespräch"))
	require.NoError(t, s.Enter("Angebot"))
	require.NoError(t, s.Leave())

	intent, result := s.Drop()
	assert.Equal(t, Cancelled, result)
	assert.Empty(t, intent)
	assert.False(t, s.Active())
}

func TestSession_Cancel(t *testing.T) {
	t.Parallel()
	var s Session

	require.NoError(t, s.Start("candidate-3", "Angebot"))
	require.NoError(t, s.Enter("Abgelehnt"))
	s.Cancel()

	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.CardID())
	assert.Empty(t, s.Hovered())
}

func TestSession_InvalidTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*Session)
		event func(*Session) error
	}{
		{
			name:  "enter while idle",
			setup: func(*Session) {},
			event: func(s *Session) error { return s.Enter("Angebot") },
		},
		{
			name:  "leave while idle",
			setup: func(*Session) {},
			event: func(s *Session) error { return s.Leave() },
		},
		{
			name:  "leave while dragging",
			setup: func(s *Session) { _ = s.Start("A1", "Angebot") },
			event: func(s *Session) error { return s.Leave() },
		},
		{
			name:  "start while dragging",
			setup: func(s *Session) { _ = s.Start("A1", "Angebot") },
			event: func(s *Session) error { return s.Start("A2", "Angebot") },
		},
		{
			name: "start while hovering",
			setup: func(s *Session) {
				_ = s.Start("A1", "Angebot")
				_ = s.Enter("Erstgespräch")
			},
			event: func(s *Session) error { return s.Start("A2", "Angebot") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var s Session
			tt.setup(&s)
			before := s

			err := tt.event(&s)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, before, s, "rejected event leaves the session unchanged")
		})
	}
}

func TestSession_IdleEmitsNoIntent(t *testing.T) {
	t.Parallel()
	var s Session

	require.ErrorIs(t, s.Leave(), ErrInvalidTransition)
	require.ErrorIs(t, s.Enter("Angebot"), ErrInvalidTransition)
	assert.Equal(t, Idle, s.State())

	intent, result := s.Drop()
	assert.Equal(t, Cancelled, result)
	assert.Empty(t, intent)
}

func TestSession_EmptyArguments(t *testing.T) {
	t.Parallel()
	var s Session

	assert.ErrorIs(t, s.Start("", "Angebot"), models.ErrEmptyCardID)
	require.NoError(t, s.Start("A1", "Angebot"))
	assert.ErrorIs(t, s.Enter(""), models.ErrEmptyStage)
	assert.Equal(t, Dragging, s.State())
}

func TestState_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "hovering", Hovering.String())
	assert.Equal(t, "state(9)", State(9).String())
}
