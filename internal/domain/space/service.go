package space

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/invalidation"
	"github.com/habitxp/habits-mcp/internal/repository"
)

// Service handles space operations.
type Service struct {
	repo       Repository
	habits     HabitRepository
	activities ActivityRepository
	publisher  Publisher
	logger     *slog.Logger
}

// NewService creates a new space service. activities and publisher may be nil.
func NewService(repo Repository, habits HabitRepository, activities ActivityRepository, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		habits:     habits,
		activities: activities,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateRequest defines space creation inputs.
type CreateRequest struct {
	ID       string
	Name     string
	ColorKey string
}

// Create creates a new space.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Space, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	colorKey := req.ColorKey
	if colorKey == "" {
		colorKey = Palette[0]
	}
	if !ValidColorKey(colorKey) {
		return nil, ErrUnknownColor
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	sp := &Space{
		ID:        id,
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		ColorKey:  colorKey,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, userID, sp); err != nil {
		return nil, fmt.Errorf("creating space: %w", err)
	}

	s.record(ctx, userID, sp.ID, activity.TypeSpaceCreated, fmt.Sprintf("created space %q", sp.Name))
	return sp, nil
}

// Get fetches a space by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Space, error) {
	sp, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("getting space: %w", err)
	}
	return sp, nil
}

// List returns all spaces of a user.
func (s *Service) List(ctx context.Context, userID string) ([]Space, error) {
	spaces, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing spaces: %w", err)
	}
	return spaces, nil
}

// UpdateColorKey recolors a space.
func (s *Service) UpdateColorKey(ctx context.Context, userID, id, colorKey string) (*Space, error) {
	if !ValidColorKey(colorKey) {
		return nil, ErrUnknownColor
	}
	sp, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	sp.ColorKey = colorKey
	if err := s.repo.Update(ctx, userID, sp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("updating space: %w", err)
	}

	s.record(ctx, userID, sp.ID, activity.TypeSpaceUpdated, fmt.Sprintf("recolored space %q to %s", sp.Name, colorKey))
	return sp, nil
}

// Delete removes a space together with its habits.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	sp, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	removed, err := s.habits.DeleteBySpace(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("deleting space habits: %w", err)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSpaceNotFound
		}
		return fmt.Errorf("deleting space: %w", err)
	}

	s.record(ctx, userID, id, activity.TypeSpaceDeleted, fmt.Sprintf("deleted space %q and %d habits", sp.Name, removed))
	return nil
}

func (s *Service) record(ctx context.Context, userID, spaceID string, typ activity.ActivityType, summary string) {
	if s.activities != nil {
		if err := s.activities.Log(ctx, userID, &activity.ActivityEntry{
			SpaceID:      &spaceID,
			ActivityType: typ,
			Summary:      summary,
		}); err != nil && s.logger != nil {
			s.logger.Warn("failed to log activity", "type", typ, "space_id", spaceID, "error", err)
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(invalidation.Message{
			UserID: userID,
			Topics: []invalidation.Topic{invalidation.TopicSpaces, invalidation.TopicHabits},
		})
	}
}
