package models

// Stage represents one step of the hiring pipeline (e.g., "Erstgespräch", "Angebot")
// Name is the identity key; Order ranks stages left to right on the board
type Stage struct {
	Name  string // Unique display name, used as identity
	Color string // Hex color used for the column badge
	Order int    // Rank for left-to-right layout
}

// StageDefinition is a per-job stage as stored by the server
type StageDefinition struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	StageOrder   int    `json:"stage_order"`
	JobPostingID string `json:"job_posting_id,omitempty"`
}

// ToStage converts the server definition into a board stage
func (d StageDefinition) ToStage() Stage {
	return Stage{Name: d.Name, Color: d.Color, Order: d.StageOrder}
}
