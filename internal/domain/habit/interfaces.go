package habit

import (
	"context"
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/invalidation"
)

// Repository provides persistence for habits.
type Repository interface {
	Create(ctx context.Context, userID string, h *Habit) error
	Get(ctx context.Context, userID, id string) (*Habit, error)
	Update(ctx context.Context, userID string, h *Habit) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, opts ListOptions) ([]Habit, error)
	ListExpired(ctx context.Context, before time.Time) ([]Habit, error)
}

// CompletionRepository provides persistence for completions.
type CompletionRepository interface {
	Add(ctx context.Context, c *Completion) error
	List(ctx context.Context, userID, habitID string) ([]Completion, error)
	ListForUser(ctx context.Context, userID string) ([]Completion, error)
	DeleteBefore(ctx context.Context, userID, habitID string, before time.Time) error
	Clear(ctx context.Context, userID, habitID string) error
}

// SpaceRepository resolves the space a habit belongs to.
type SpaceRepository interface {
	Get(ctx context.Context, userID, id string) (*space.Space, error)
}

// ActivityRepository logs habit activities.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}

// Publisher announces that cached views of a user's data are stale.
type Publisher interface {
	Publish(msg invalidation.Message)
}
