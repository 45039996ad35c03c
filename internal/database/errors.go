package database

import "errors"

var (
	// ErrNotFound indicates the record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrUnknownStage indicates a stage that is not defined for the job posting
	ErrUnknownStage = errors.New("stage is not defined for this job posting")

	// ErrEmptyValue indicates a required field was empty
	ErrEmptyValue = errors.New("value must not be empty")
)
