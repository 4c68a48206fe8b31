package habit

import "errors"

var (
	// ErrHabitNotFound indicates the habit doesn't exist.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidInput indicates invalid habit input.
	ErrInvalidInput = errors.New("invalid habit input")
	// ErrInvalidDuration indicates a duration that is not value+unit.
	ErrInvalidDuration = errors.New("invalid habit duration")
	// ErrSpaceNotFound indicates the referenced space doesn't exist.
	ErrSpaceNotFound = errors.New("space not found")
	// ErrCooldownActive indicates the habit was completed too recently.
	ErrCooldownActive = errors.New("habit completion cooldown still active")
	// ErrAlreadyCompleted indicates the habit is done for the current period.
	ErrAlreadyCompleted = errors.New("habit already completed for this period")
)
