package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/config"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/remote"
	"github.com/thenoetrevino/hirepipe/internal/services/move"
)

// ============================================================================
// Mock Types for Testing
// ============================================================================

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

type mockStringer struct{}

func (mockStringer) String() string { return "A1 -> Angebot" }

func newFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: &out, ErrOut: &errOut}, &out, &errOut
}

// ============================================================================
// Success
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f, out, _ := newFormatter(true, false)

	require.NoError(t, f.Success(map[string]any{"card": "A1"}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "A1", result["data"].(map[string]any)["card"])
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	f, out, _ := newFormatter(false, true)
	require.NoError(t, f.Success(mockDataWithID{ID: "candidate-4", Name: "Anna"}))
	assert.Equal(t, "candidate-4\n", out.String())

	// Without an id, quiet falls through to human output
	f, out, _ = newFormatter(false, true)
	require.NoError(t, f.Success(mockStringer{}))
	assert.Equal(t, "A1 -> Angebot\n", out.String())
}

func TestOutputFormatter_Success_HumanReadable(t *testing.T) {
	f, out, _ := newFormatter(false, false)
	require.NoError(t, f.Success(struct{ Stage string }{"Angebot"}))
	assert.Equal(t, "{Stage:Angebot}\n", out.String())
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_Error_JSON(t *testing.T) {
	f, out, errOut := newFormatter(true, false)

	require.NoError(t, f.ErrorWithSuggestion("CARD_NOT_FOUND", "card not found", "list the board"))
	assert.Empty(t, errOut.String())

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "CARD_NOT_FOUND", errData["code"])
	assert.Equal(t, "list the board", errData["suggestion"])
}

func TestOutputFormatter_Error_HumanReadable(t *testing.T) {
	f, out, errOut := newFormatter(false, false)

	require.NoError(t, f.Error("MOVE_FAILED", "db down"))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "db down")
	assert.NotContains(t, errOut.String(), "Suggestion")
}

func TestOutputFormatter_Fail(t *testing.T) {
	f, _, errOut := newFormatter(false, false)

	code := f.Fail(&move.FailedError{Reason: "db down", StatusCode: 500})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut.String(), "db down")
}

// ============================================================================
// Classify
// ============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		exitCode int
	}{
		{"nil", nil, "", ExitSuccess},
		{"not found", move.ErrCardNotFound, "CARD_NOT_FOUND", ExitNotFound},
		{"in progress", move.ErrMoveInProgress, "MOVE_IN_PROGRESS", ExitValidation},
		{"empty stage", models.ErrEmptyStage, "VALIDATION_ERROR", ExitValidation},
		{"no practice", fmt.Errorf("open: %w", app.ErrNoPractice), "USAGE_ERROR", ExitUsage},
		{"no server", ErrNoServer, "USAGE_ERROR", ExitUsage},
		{"move failed", &move.FailedError{Reason: "db down", StatusCode: 500}, "MOVE_FAILED", ExitError},
		{"auth on move", &move.FailedError{StatusCode: 401}, "AUTH_REQUIRED", ExitError},
		{"auth on load", fmt.Errorf("load: %w", &remote.APIError{StatusCode: 401}), "AUTH_REQUIRED", ExitError},
		{"other", errors.New("boom"), "ERROR", ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.exitCode, got.ExitCode)
		})
	}
}

// ============================================================================
// Context
// ============================================================================

func TestNewCLI(t *testing.T) {
	_, err := NewCLI(&config.Config{})
	assert.ErrorIs(t, err, ErrNoServer)

	c, err := NewCLI(&config.Config{ServerURL: "http://localhost:8080", Token: "t"})
	require.NoError(t, err)
	require.NotNil(t, c.Client)

	ctx := WithCLI(context.Background(), c)
	got, err := GetCLIFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, err = GetCLIFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoCLI)
}

func TestReportAndExitCode(t *testing.T) {
	var errOut bytes.Buffer
	f := &OutputFormatter{Out: &bytes.Buffer{}, ErrOut: &errOut}

	assert.NoError(t, Report(f, nil))
	assert.Equal(t, ExitSuccess, ExitCode(nil))

	err := Report(f, move.ErrCardNotFound)
	require.Error(t, err)
	assert.ErrorIs(t, err, move.ErrCardNotFound)
	assert.Equal(t, ExitNotFound, ExitCode(err))
	assert.Contains(t, errOut.String(), "card is no longer on the board")

	var reported *ReportedError
	require.ErrorAs(t, err, &reported)
	assert.Equal(t, ExitNotFound, reported.Code)

	// A wrapped report keeps its code
	assert.Equal(t, ExitNotFound, ExitCode(fmt.Errorf("watch: %w", err)))

	// Unreported errors are classified directly
	assert.Equal(t, ExitUsage, ExitCode(ErrNoServer))
}
