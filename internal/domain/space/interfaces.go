package space

import (
	"context"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/invalidation"
)

// Repository provides persistence for spaces.
type Repository interface {
	Create(ctx context.Context, userID string, sp *Space) error
	Get(ctx context.Context, userID, id string) (*Space, error)
	List(ctx context.Context, userID string) ([]Space, error)
	Update(ctx context.Context, userID string, sp *Space) error
	Delete(ctx context.Context, userID, id string) error
}

// HabitRepository removes the habits of a deleted space.
type HabitRepository interface {
	DeleteBySpace(ctx context.Context, userID, spaceID string) (int, error)
}

// ActivityRepository logs space activities.
type ActivityRepository interface {
	Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error
}

// Publisher announces that cached views of a user's data are stale.
type Publisher interface {
	Publish(msg invalidation.Message)
}
