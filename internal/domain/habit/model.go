package habit

import "time"

// Frequency is the repetition window of a habit.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyNone    Frequency = "NONE"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyNone:
		return true
	}
	return false
}

// Habit is a recurring task owned by a user and grouped in a space.
type Habit struct {
	ID               string     `json:"id" yaml:"id"`
	UserID           string     `json:"user_id" yaml:"user_id,omitempty"`
	Title            string     `json:"title" yaml:"title"`
	Duration         string     `json:"duration" yaml:"duration"`
	Frequency        Frequency  `json:"frequency" yaml:"frequency"`
	Times            int        `json:"times" yaml:"times"`
	Completed        bool       `json:"completed" yaml:"completed"`
	CompletionsCount int        `json:"completions_count" yaml:"completions_count"`
	SpaceID          string     `json:"space_id" yaml:"space_id"`
	Deadline         *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	CreatedAt        time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt        time.Time  `json:"updated_at" yaml:"-"`
}

// Completion is one check-off of a habit.
type Completion struct {
	ID              int64     `json:"id"`
	HabitID         string    `json:"habit_id"`
	UserID          string    `json:"user_id"`
	Timestamp       time.Time `json:"timestamp"`
	DurationMinutes int       `json:"duration_minutes"`
}

// CompleteResult reports the outcome of a completion.
type CompleteResult struct {
	Habit     *Habit `json:"habit"`
	Completed bool   `json:"completed"`
	Remaining int    `json:"remaining"`
}
