package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/hirepipe/internal/config"
)

// keyMap holds the board's bindings, built from the user's key mappings
type keyMap struct {
	PrevStage  key.Binding
	NextStage  key.Binding
	PrevCard   key.Binding
	NextCard   key.Binding
	PickUp     key.Binding
	Drop       key.Binding
	CancelDrag key.Binding
	Archive    key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		PrevStage:  key.NewBinding(key.WithKeys(km.PrevStage, "left"), key.WithHelp(km.PrevStage, "prev stage")),
		NextStage:  key.NewBinding(key.WithKeys(km.NextStage, "right"), key.WithHelp(km.NextStage, "next stage")),
		PrevCard:   key.NewBinding(key.WithKeys(km.PrevCard, "up"), key.WithHelp(km.PrevCard, "prev card")),
		NextCard:   key.NewBinding(key.WithKeys(km.NextCard, "down"), key.WithHelp(km.NextCard, "next card")),
		PickUp:     key.NewBinding(key.WithKeys(km.PickUp), key.WithHelp(km.PickUp, "pick up")),
		Drop:       key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(km.Drop, "drop")),
		CancelDrag: key.NewBinding(key.WithKeys(km.CancelDrag), key.WithHelp(km.CancelDrag, "cancel")),
		Archive:    key.NewBinding(key.WithKeys(km.Archive), key.WithHelp(km.Archive, "archive")),
		Refresh:    key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh")),
		Help:       key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:       key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.CancelDrag, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevStage, k.NextStage, k.PrevCard, k.NextCard},
		{k.PickUp, k.Drop, k.CancelDrag},
		{k.Archive, k.Refresh, k.Help, k.Quit},
	}
}
