package taxonomy

import "errors"

// Taxonomy construction errors
var (
	ErrEmptyStageName = errors.New("stage name cannot be empty")
	ErrDuplicateStage = errors.New("duplicate stage name")
)
