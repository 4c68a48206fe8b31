package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeHabitCreated   ActivityType = "habit_created"
	TypeHabitUpdated   ActivityType = "habit_updated"
	TypeHabitDeleted   ActivityType = "habit_deleted"
	TypeHabitCompleted ActivityType = "habit_completed"
	TypeHabitReset     ActivityType = "habit_reset"
	TypeSpaceCreated   ActivityType = "space_created"
	TypeSpaceUpdated   ActivityType = "space_updated"
	TypeSpaceDeleted   ActivityType = "space_deleted"
)

// ActivityEntry represents an event in a user's activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	UserID       string       `json:"user_id"`
	HabitID      *string      `json:"habit_id,omitempty"`
	SpaceID      *string      `json:"space_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
