package listview_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/invalidation"
	"github.com/habitxp/habits-mcp/internal/listview"
)

type habitLister struct{ mock.Mock }

func (m *habitLister) List(ctx context.Context, userID string, opts habit.ListOptions) ([]habit.Habit, error) {
	args := m.Called(ctx, userID, opts)
	habits, _ := args.Get(0).([]habit.Habit)
	return habits, args.Error(1)
}

type spaceLister struct{ mock.Mock }

func (m *spaceLister) List(ctx context.Context, userID string) ([]space.Space, error) {
	args := m.Called(ctx, userID)
	spaces, _ := args.Get(0).([]space.Space)
	return spaces, args.Error(1)
}

func listFixtures() ([]habit.Habit, []space.Space) {
	return []habit.Habit{
			newHabit("a", "Read", "30min", habit.FrequencyDaily, false, "s1"),
			newHabit("b", "Plan", "1h", habit.FrequencyWeekly, true, "s1"),
		}, []space.Space{
			{ID: "s1", ColorKey: "teal"},
		}
}

func TestListService_ProjectsLoadedData(t *testing.T) {
	ctx := context.Background()
	habits, spaces := listFixtures()

	habitRepo := &habitLister{}
	spaceRepo := &spaceLister{}
	habitRepo.On("List", ctx, "user1", habit.ListOptions{}).Return(habits, nil)
	spaceRepo.On("List", ctx, "user1").Return(spaces, nil)

	svc := listview.NewService(habitRepo, spaceRepo, language.German, nil, 0, nil)
	entries, err := svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "DIVIDER", "b"}, rows(entries))
	require.Equal(t, "teal", entries[0].Habit.SpaceColorKey)

	entries, err = svc.List(ctx, "user1", listview.ScopeWeekly, language.Und)
	require.NoError(t, err)
	require.Equal(t, []string{"DIVIDER", "b"}, rows(entries))

	// Without a bus nothing is cached.
	habitRepo.AssertNumberOfCalls(t, "List", 2)
}

func TestListService_CachesUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	habits, spaces := listFixtures()

	habitRepo := &habitLister{}
	spaceRepo := &spaceLister{}
	habitRepo.On("List", ctx, "user1", habit.ListOptions{}).Return(habits, nil)
	habitRepo.On("List", ctx, "user2", habit.ListOptions{}).Return([]habit.Habit{}, nil)
	spaceRepo.On("List", ctx, mock.Anything).Return(spaces, nil)

	bus := invalidation.NewBus()
	svc := listview.NewService(habitRepo, spaceRepo, language.German, bus, time.Hour, nil)
	defer svc.Close()

	_, err := svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	_, err = svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	habitRepo.AssertNumberOfCalls(t, "List", 1)

	// Another user's change leaves user1's cache alone.
	_, err = svc.List(ctx, "user2", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	bus.Publish(invalidation.Message{UserID: "user2", Topics: []invalidation.Topic{invalidation.TopicHabits}})
	_, err = svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	habitRepo.AssertNumberOfCalls(t, "List", 2)

	bus.Publish(invalidation.Message{UserID: "user1", Topics: []invalidation.Topic{invalidation.TopicSpaces}})
	_, err = svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	habitRepo.AssertNumberOfCalls(t, "List", 3)
}

func TestListService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	habits, spaces := listFixtures()

	habitRepo := &habitLister{}
	spaceRepo := &spaceLister{}
	habitRepo.On("List", ctx, "user1", habit.ListOptions{}).Return(habits, nil)
	spaceRepo.On("List", ctx, "user1").Return(spaces, nil)

	svc := listview.NewService(habitRepo, spaceRepo, language.German, invalidation.NewBus(), time.Hour, nil)
	defer svc.Close()

	first, err := svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	first[0].Habit.Title = "changed"

	second, err := svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	require.Equal(t, "Read", second[0].Habit.Title)
}

func TestListService_CloseStopsCaching(t *testing.T) {
	ctx := context.Background()
	habits, spaces := listFixtures()

	habitRepo := &habitLister{}
	spaceRepo := &spaceLister{}
	habitRepo.On("List", ctx, "user1", habit.ListOptions{}).Return(habits, nil)
	spaceRepo.On("List", ctx, "user1").Return(spaces, nil)

	svc := listview.NewService(habitRepo, spaceRepo, language.German, invalidation.NewBus(), time.Hour, nil)
	_, err := svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	svc.Close()

	_, err = svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	_, err = svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.NoError(t, err)
	habitRepo.AssertNumberOfCalls(t, "List", 3)
}

func TestListService_LoadErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	habitRepo := &habitLister{}
	spaceRepo := &spaceLister{}
	habitRepo.On("List", ctx, "user1", habit.ListOptions{}).Return(nil, boom)

	svc := listview.NewService(habitRepo, spaceRepo, language.German, nil, 0, nil)
	_, err := svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.ErrorIs(t, err, boom)

	habitRepo2 := &habitLister{}
	habitRepo2.On("List", ctx, "user1", habit.ListOptions{}).Return([]habit.Habit{}, nil)
	spaceRepo.On("List", ctx, "user1").Return(nil, boom)

	svc = listview.NewService(habitRepo2, spaceRepo, language.German, nil, 0, nil)
	_, err = svc.List(ctx, "user1", listview.ScopeAll, language.Und)
	require.ErrorIs(t, err, boom)
}
