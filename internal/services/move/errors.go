package move

import (
	"errors"
	"net/http"

	"github.com/thenoetrevino/hirepipe/internal/models"
)

// Local errors: no request was sent
var (
	// ErrCardNotFound indicates the card id is not on the current board
	ErrCardNotFound = errors.New("card not found")

	// ErrMoveInProgress indicates a move for the same card has not resolved yet
	ErrMoveInProgress = errors.New("move already in progress for this card")

	// ErrNoCandidate indicates a card without a candidate to archive
	ErrNoCandidate = errors.New("card has no candidate")
)

// Remote errors: matched with errors.Is against a *FailedError
var (
	// ErrMoveFailed matches every failed persistence call
	ErrMoveFailed = errors.New("move failed")

	// ErrAuthRequired matches failures caused by HTTP 401
	ErrAuthRequired = errors.New("authentication required")
)

// Generic notices used when the server gave no reason
const (
	reasonApplication = "application could not be moved"
	reasonCandidate   = "candidate could not be moved"
	reasonArchive     = "candidate could not be archived"
	reasonNetwork     = "connection to server failed"
	reasonAuth        = "authentication required, please sign in again"
)

// FailedError is returned when the persistence call did not succeed.
// The optimistic change has already been rolled back when it is returned.
type FailedError struct {
	CardID     string
	Kind       models.CardKind
	Reason     string // Server-provided message, or a generic notice
	StatusCode int    // 0 for network failures and cancellation
	Err        error
}

// Error returns the user-facing reason
func (e *FailedError) Error() string {
	return e.Reason
}

// Unwrap exposes the underlying transport error
func (e *FailedError) Unwrap() error {
	return e.Err
}

// Is matches ErrMoveFailed always and ErrAuthRequired for 401 responses
func (e *FailedError) Is(target error) bool {
	switch target {
	case ErrMoveFailed:
		return true
	case ErrAuthRequired:
		return e.StatusCode == http.StatusUnauthorized
	default:
		return false
	}
}

// Describe returns the notice a UI shows for a move error
func Describe(err error) string {
	var failed *FailedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &failed):
		return failed.Reason
	case errors.Is(err, ErrCardNotFound):
		return "card is no longer on the board"
	case errors.Is(err, ErrMoveInProgress):
		return "card is still being moved"
	default:
		return err.Error()
	}
}
