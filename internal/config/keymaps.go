package config

// KeyMappings defines all configurable key bindings of the board
type KeyMappings struct {
	// Navigation
	PrevStage string `yaml:"prev_stage"`
	NextStage string `yaml:"next_stage"`
	PrevCard  string `yaml:"prev_card"`
	NextCard  string `yaml:"next_card"`

	// Drag
	PickUp     string `yaml:"pick_up"`
	Drop       string `yaml:"drop"`
	CancelDrag string `yaml:"cancel_drag"`

	// Cards
	Archive string `yaml:"archive"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevStage: "h",
		NextStage: "l",
		PrevCard:  "k",
		NextCard:  "j",

		PickUp:     "space",
		Drop:       "enter",
		CancelDrag: "esc",

		Archive: "a",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.PrevStage, defaults.PrevStage)
	fill(&k.NextStage, defaults.NextStage)
	fill(&k.PrevCard, defaults.PrevCard)
	fill(&k.NextCard, defaults.NextCard)
	fill(&k.PickUp, defaults.PickUp)
	fill(&k.Drop, defaults.Drop)
	fill(&k.CancelDrag, defaults.CancelDrag)
	fill(&k.Archive, defaults.Archive)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
