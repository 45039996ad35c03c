package models

import "errors"

// Domain-specific errors shared by the store and its writers
var (
	// ErrEmptyCardID indicates a card reference without an id
	ErrEmptyCardID = errors.New("card id cannot be empty")

	// ErrEmptyStage indicates a move target without a stage name
	ErrEmptyStage = errors.New("stage name cannot be empty")
)
