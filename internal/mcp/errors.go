package mcp

import (
	"errors"
	"fmt"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/listview"
	"github.com/habitxp/habits-mcp/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		return &APIError{Code: "HABIT_NOT_FOUND", Message: "habit not found", RecoveryHint: "Call list_habits for valid IDs"}
	case errors.Is(err, habit.ErrSpaceNotFound), errors.Is(err, space.ErrSpaceNotFound):
		return &APIError{Code: "SPACE_NOT_FOUND", Message: "space not found", RecoveryHint: "Call list_spaces or create_space first"}
	case errors.Is(err, habit.ErrInvalidDuration):
		return &APIError{Code: "INVALID_DURATION", Message: "duration must be a number followed by min, h, pcs, m, km or l", RecoveryHint: "Use e.g. 30min or duration_value=30 with duration_unit=MINUTES"}
	case errors.Is(err, habit.ErrCooldownActive):
		return &APIError{Code: "COOLDOWN_ACTIVE", Message: "habit was completed too recently", RecoveryHint: "Wait for the cooldown before completing again"}
	case errors.Is(err, habit.ErrAlreadyCompleted):
		return &APIError{Code: "ALREADY_COMPLETED", Message: "habit already completed for this period"}
	case errors.Is(err, space.ErrUnknownColor):
		return &APIError{Code: "UNKNOWN_COLOR", Message: "color key is not in the palette", Details: space.Palette}
	case errors.Is(err, listview.ErrUnknownScope):
		return &APIError{Code: "UNKNOWN_SCOPE", Message: "unknown list scope", Details: listview.Scopes, RecoveryHint: "Use ALL, DAILY, WEEKLY, MONTHLY or tab 0-3"}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "id is already in use", RecoveryHint: "Pick another id or omit it to get a generated one"}
	case errors.Is(err, habit.ErrInvalidInput), errors.Is(err, space.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return nil
	}
}
