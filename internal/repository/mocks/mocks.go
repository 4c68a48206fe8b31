package mocks

import (
	"context"
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/invalidation"
	"github.com/stretchr/testify/mock"
)

// HabitRepository is a mock for habit.Repository and space.HabitRepository.
type HabitRepository struct {
	mock.Mock
}

func (m *HabitRepository) Create(ctx context.Context, userID string, h *habit.Habit) error {
	args := m.Called(ctx, userID, h)
	return args.Error(0)
}

func (m *HabitRepository) Get(ctx context.Context, userID, id string) (*habit.Habit, error) {
	args := m.Called(ctx, userID, id)
	if h, ok := args.Get(0).(*habit.Habit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) Update(ctx context.Context, userID string, h *habit.Habit) error {
	args := m.Called(ctx, userID, h)
	return args.Error(0)
}

func (m *HabitRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *HabitRepository) List(ctx context.Context, userID string, opts habit.ListOptions) ([]habit.Habit, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]habit.Habit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) ListExpired(ctx context.Context, before time.Time) ([]habit.Habit, error) {
	args := m.Called(ctx, before)
	if list, ok := args.Get(0).([]habit.Habit); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HabitRepository) DeleteBySpace(ctx context.Context, userID, spaceID string) (int, error) {
	args := m.Called(ctx, userID, spaceID)
	return args.Int(0), args.Error(1)
}

// CompletionRepository is a mock for habit.CompletionRepository.
type CompletionRepository struct {
	mock.Mock
}

func (m *CompletionRepository) Add(ctx context.Context, c *habit.Completion) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CompletionRepository) List(ctx context.Context, userID, habitID string) ([]habit.Completion, error) {
	args := m.Called(ctx, userID, habitID)
	if list, ok := args.Get(0).([]habit.Completion); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompletionRepository) ListForUser(ctx context.Context, userID string) ([]habit.Completion, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]habit.Completion); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CompletionRepository) DeleteBefore(ctx context.Context, userID, habitID string, before time.Time) error {
	args := m.Called(ctx, userID, habitID, before)
	return args.Error(0)
}

func (m *CompletionRepository) Clear(ctx context.Context, userID, habitID string) error {
	args := m.Called(ctx, userID, habitID)
	return args.Error(0)
}

// SpaceRepository is a mock for space.Repository.
type SpaceRepository struct {
	mock.Mock
}

func (m *SpaceRepository) Create(ctx context.Context, userID string, sp *space.Space) error {
	args := m.Called(ctx, userID, sp)
	return args.Error(0)
}

func (m *SpaceRepository) Get(ctx context.Context, userID, id string) (*space.Space, error) {
	args := m.Called(ctx, userID, id)
	if sp, ok := args.Get(0).(*space.Space); ok {
		return sp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SpaceRepository) List(ctx context.Context, userID string) ([]space.Space, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]space.Space); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SpaceRepository) Update(ctx context.Context, userID string, sp *space.Space) error {
	args := m.Called(ctx, userID, sp)
	return args.Error(0)
}

func (m *SpaceRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Publisher is a mock invalidation publisher.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(msg invalidation.Message) {
	m.Called(msg)
}
