package mcp

import (
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/listview"
)

type ListHabitsParams struct {
	Scope  string `json:"scope,omitempty"`
	Tab    *int   `json:"tab,omitempty"`
	Locale string `json:"locale,omitempty"`
}

type ListScopesParams struct {
	Locale string `json:"locale,omitempty"`
}

type GetHabitParams struct {
	ID string `json:"id"`
}

type CreateHabitParams struct {
	ID            string             `json:"id,omitempty"`
	Title         string             `json:"title"`
	Duration      string             `json:"duration,omitempty"`
	DurationValue string             `json:"duration_value,omitempty"`
	DurationUnit  habit.DurationUnit `json:"duration_unit,omitempty"`
	Frequency     habit.Frequency    `json:"frequency,omitempty"`
	Times         int                `json:"times,omitempty"`
	SpaceID       string             `json:"space_id"`
	Deadline      *time.Time         `json:"deadline,omitempty"`
}

type UpdateHabitParams struct {
	ID            string              `json:"id"`
	Title         *string             `json:"title,omitempty"`
	DurationValue *string             `json:"duration_value,omitempty"`
	DurationUnit  *habit.DurationUnit `json:"duration_unit,omitempty"`
	Frequency     *habit.Frequency    `json:"frequency,omitempty"`
	Times         *int                `json:"times,omitempty"`
	SpaceID       *string             `json:"space_id,omitempty"`
}

type DeleteHabitParams struct {
	ID string `json:"id"`
}

type CompleteHabitParams struct {
	ID string `json:"id"`
}

type CreateSpaceParams struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	ColorKey string `json:"color_key,omitempty"`
}

type UpdateSpaceColorParams struct {
	ID       string `json:"id"`
	ColorKey string `json:"color_key"`
}

type DeleteSpaceParams struct {
	ID string `json:"id"`
}

type GetRecentActivityParams struct {
	HabitID *string                `json:"habit_id,omitempty"`
	SpaceID *string                `json:"space_id,omitempty"`
	Type    *activity.ActivityType `json:"type,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
	Offset  int                    `json:"offset,omitempty"`
}

// ListHabitsResponse is the projected, localized habit list.
type ListHabitsResponse struct {
	Scope      listview.Scope      `json:"scope"`
	ScopeLabel string              `json:"scope_label"`
	Locale     string              `json:"locale"`
	Entries    []ListEntryResponse `json:"entries"`
}

// ListEntryResponse is one list row. Divider rows carry only a label.
type ListEntryResponse struct {
	Kind  listview.EntryKind `json:"kind"`
	Label string             `json:"label,omitempty"`
	Habit *HabitRowResponse  `json:"habit,omitempty"`
}

type HabitRowResponse struct {
	listview.HabitView
	DurationLabel  string `json:"duration_label"`
	FrequencyLabel string `json:"frequency_label,omitempty"`
	Progress       string `json:"progress,omitempty"`
}

type ScopeTabResponse struct {
	Index int            `json:"index"`
	Scope listview.Scope `json:"scope"`
	Label string         `json:"label"`
}

type ListScopesResponse struct {
	Locale string             `json:"locale"`
	Tabs   []ScopeTabResponse `json:"tabs"`
}

type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time             `json:"timestamp"`
	Type      activity.ActivityType `json:"type"`
	HabitID   string                `json:"habit_id,omitempty"`
	SpaceID   string                `json:"space_id,omitempty"`
	Summary   string                `json:"summary"`
	Details   string                `json:"details,omitempty"`
}
