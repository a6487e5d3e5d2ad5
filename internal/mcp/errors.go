package mcp

import (
	"errors"
	"fmt"

	"github.com/shadowtrack/shadowtrack/internal/domain/artifact"
	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
	"github.com/shadowtrack/shadowtrack/internal/domain/session"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Returns nil for errors
// without a specific mapping.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, session.ErrAuthRequired), errors.Is(err, entry.ErrUserRequired):
		return &APIError{Code: "AUTH_REQUIRED", Message: "authentication required", RecoveryHint: "Provide a valid bearer token"}
	case errors.Is(err, entry.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: "entry not found", RecoveryHint: "Check the entry id"}
	case errors.Is(err, entry.ErrNotActive):
		return &APIError{Code: "ENTRY_TRASHED", Message: "entry is in the trash", RecoveryHint: "Restore it first"}
	case errors.Is(err, entry.ErrNotTrashed):
		return &APIError{Code: "ENTRY_NOT_TRASHED", Message: "entry is not in the trash", RecoveryHint: "Only trashed entries can be restored"}
	case errors.Is(err, entry.ErrNothingToUndo):
		return &APIError{Code: "NOTHING_TO_UNDO", Message: "no deleted entry to undo", RecoveryHint: "Undo only covers the most recent delete"}
	case errors.Is(err, entry.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid entry input", RecoveryHint: "All fields are required; hours must be non-negative"}
	case errors.Is(err, artifact.ErrUnknownTone):
		return &APIError{Code: "UNKNOWN_TONE", Message: "unknown tone", RecoveryHint: "Use confident, humble, emotional or professional"}
	case errors.Is(err, artifact.ErrToneNotSelected):
		return &APIError{Code: "TONE_NOT_SELECTED", Message: "no tone selected", RecoveryHint: "Call set_tone first"}
	case errors.Is(err, artifact.ErrNoDescription):
		return &APIError{Code: "NO_DESCRIPTION", Message: "no description to tune", RecoveryHint: "Generate a description first"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
