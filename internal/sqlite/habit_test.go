package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestHabit(id, spaceID string, created time.Time) *habit.Habit {
	return &habit.Habit{
		ID:        id,
		Title:     "Habit " + id,
		Duration:  "15min",
		Frequency: habit.FrequencyDaily,
		Times:     1,
		SpaceID:   spaceID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestHabitRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepository(db)

	created := time.Date(2026, 3, 11, 8, 30, 0, 0, time.UTC)
	deadline := created.Add(48 * time.Hour)
	h := newTestHabit("h1", "s1", created)
	h.Deadline = &deadline
	require.NoError(t, repo.Create(ctx, "user1", h))

	got, err := repo.Get(ctx, "user1", "h1")
	require.NoError(t, err)
	require.Equal(t, "user1", got.UserID)
	require.Equal(t, "Habit h1", got.Title)
	require.Equal(t, habit.FrequencyDaily, got.Frequency)
	require.True(t, got.CreatedAt.Equal(created))
	require.NotNil(t, got.Deadline)
	require.True(t, got.Deadline.Equal(deadline))

	_, err = repo.Get(ctx, "user2", "h1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Create(ctx, "user1", h), repository.ErrConflict)

	// Ids are only unique per user.
	require.NoError(t, repo.Create(ctx, "user2", newTestHabit("h1", "s1", created)))
	got, err = repo.Get(ctx, "user1", "h1")
	require.NoError(t, err)
	require.Equal(t, "user1", got.UserID)
}

func TestHabitRepository_UpdateDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepository(db)

	h := newTestHabit("h1", "s1", time.Now())
	require.NoError(t, repo.Create(ctx, "user1", h))

	h.Title = "Renamed"
	h.Completed = true
	h.CompletionsCount = 1
	require.NoError(t, repo.Update(ctx, "user1", h))

	got, err := repo.Get(ctx, "user1", "h1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
	require.True(t, got.Completed)
	require.Equal(t, 1, got.CompletionsCount)
	require.Nil(t, got.Deadline)

	require.ErrorIs(t, repo.Update(ctx, "user2", h), repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "user2", "h1"), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "user1", "h1"))
	_, err = repo.Get(ctx, "user1", "h1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHabitRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepository(db)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h1 := newTestHabit("h1", "s1", base)
	h2 := newTestHabit("h2", "s2", base.Add(time.Minute))
	h2.Frequency = habit.FrequencyWeekly
	h3 := newTestHabit("h3", "s1", base.Add(2*time.Minute))
	for _, h := range []*habit.Habit{h1, h2, h3} {
		require.NoError(t, repo.Create(ctx, "user1", h))
	}
	require.NoError(t, repo.Create(ctx, "user2", newTestHabit("other", "s1", base)))

	all, err := repo.List(ctx, "user1", habit.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "h1", all[0].ID)
	require.Equal(t, "h3", all[2].ID)

	bySpace, err := repo.List(ctx, "user1", habit.ListOptions{SpaceID: "s1"})
	require.NoError(t, err)
	require.Len(t, bySpace, 2)

	weekly, err := repo.List(ctx, "user1", habit.ListOptions{Frequency: habit.FrequencyWeekly})
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	require.Equal(t, "h2", weekly[0].ID)

	none, err := repo.List(ctx, "nobody", habit.ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestHabitRepository_ListExpired(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewHabitRepository(db)

	today := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	past := today.Add(-24 * time.Hour)
	future := today.Add(24 * time.Hour)

	expired := newTestHabit("expired", "s1", today)
	expired.Deadline = &past
	upcoming := newTestHabit("upcoming", "s1", today)
	upcoming.Deadline = &future
	open := newTestHabit("open", "s1", today)
	other := newTestHabit("other-user", "s1", today)
	other.Deadline = &past

	require.NoError(t, repo.Create(ctx, "user1", expired))
	require.NoError(t, repo.Create(ctx, "user1", upcoming))
	require.NoError(t, repo.Create(ctx, "user1", open))
	require.NoError(t, repo.Create(ctx, "user2", other))

	got, err := repo.ListExpired(ctx, today)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "expired", got[0].ID)
	require.Equal(t, "other-user", got[1].ID)
	require.Equal(t, "user2", got[1].UserID)
}

func TestHabitRepository_DeleteBySpaceCascadesCompletions(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	habits := NewHabitRepository(db)
	completions := NewCompletionRepository(db)

	now := time.Now()
	require.NoError(t, habits.Create(ctx, "user1", newTestHabit("h1", "s1", now)))
	require.NoError(t, habits.Create(ctx, "user1", newTestHabit("h2", "s1", now)))
	require.NoError(t, habits.Create(ctx, "user1", newTestHabit("h3", "s2", now)))
	require.NoError(t, habits.Create(ctx, "user2", newTestHabit("h1", "s1", now)))
	require.NoError(t, completions.Add(ctx, &habit.Completion{HabitID: "h1", UserID: "user1", Timestamp: now}))
	require.NoError(t, completions.Add(ctx, &habit.Completion{HabitID: "h1", UserID: "user2", Timestamp: now}))

	n, err := habits.DeleteBySpace(ctx, "user1", "s1")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	left, err := habits.List(ctx, "user1", habit.ListOptions{})
	require.NoError(t, err)
	require.Len(t, left, 1)

	comps, err := completions.List(ctx, "user1", "h1")
	require.NoError(t, err)
	require.Empty(t, comps)

	// The other user's space with the same id is untouched.
	others, err := habits.List(ctx, "user2", habit.ListOptions{})
	require.NoError(t, err)
	require.Len(t, others, 1)
	comps, err = completions.List(ctx, "user2", "h1")
	require.NoError(t, err)
	require.Len(t, comps, 1)
}
