package cli

import (
	"errors"

	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/remote"
	"github.com/thenoetrevino/hirepipe/internal/services/move"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: network errors, failed moves, rejected credentials.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing practice id, missing required arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested card was not on the board.
	ExitNotFound = 3

	// ExitDataErr indicates the server sent data that could not be used.
	// Use for: invalid stage definitions.
	ExitDataErr = 4

	// ExitValidation indicates a request the engine refused locally.
	// Use for: a move already in flight, an empty stage or card id.
	ExitValidation = 5
)

// Failure classifies an error for output: a machine-readable code, the
// process exit code and an optional hint for the user
type Failure struct {
	Code       string
	ExitCode   int
	Suggestion string
}

// Classify maps an engine error to its CLI failure
func Classify(err error) Failure {
	switch {
	case err == nil:
		return Failure{ExitCode: ExitSuccess}
	case errors.Is(err, move.ErrAuthRequired), errors.Is(err, remote.ErrUnauthorized):
		return Failure{
			Code:       "AUTH_REQUIRED",
			ExitCode:   ExitError,
			Suggestion: "Sign in again and store the new token with --token or HIREPIPE_TOKEN",
		}
	case errors.Is(err, move.ErrMoveFailed):
		return Failure{Code: "MOVE_FAILED", ExitCode: ExitError}
	case errors.Is(err, move.ErrCardNotFound):
		return Failure{
			Code:       "CARD_NOT_FOUND",
			ExitCode:   ExitNotFound,
			Suggestion: "Run 'hirepipe board' to list the cards of this board",
		}
	case errors.Is(err, move.ErrMoveInProgress):
		return Failure{Code: "MOVE_IN_PROGRESS", ExitCode: ExitValidation}
	case errors.Is(err, move.ErrNoCandidate):
		return Failure{Code: "NO_CANDIDATE", ExitCode: ExitValidation}
	case errors.Is(err, models.ErrEmptyStage), errors.Is(err, models.ErrEmptyCardID):
		return Failure{Code: "VALIDATION_ERROR", ExitCode: ExitValidation}
	case errors.Is(err, app.ErrNoPractice):
		return Failure{
			Code:       "USAGE_ERROR",
			ExitCode:   ExitUsage,
			Suggestion: "Pass --practice or set practice_id in the config file",
		}
	case errors.Is(err, ErrNoServer):
		return Failure{
			Code:       "USAGE_ERROR",
			ExitCode:   ExitUsage,
			Suggestion: "Pass --server or set server_url in the config file",
		}
	case errors.Is(err, ErrNoCLI):
		return Failure{Code: "INITIALIZATION_ERROR", ExitCode: ExitError}
	case errors.Is(err, taxonomy.ErrDuplicateStage), errors.Is(err, taxonomy.ErrEmptyStageName):
		return Failure{Code: "INVALID_STAGES", ExitCode: ExitDataErr}
	default:
		return Failure{Code: "ERROR", ExitCode: ExitError}
	}
}

// ReportedError carries the exit code of a failure that was already reported
type ReportedError struct {
	Code int
	Err  error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Report prints err through f and wraps it with its exit code
func Report(f *OutputFormatter, err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Code: f.Fail(err), Err: err}
}

// ExitCode returns the process exit code for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ReportedError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return Classify(err).ExitCode
}
