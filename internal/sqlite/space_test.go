package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSpaceRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSpaceRepository(db)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s1 := &space.Space{ID: "s1", Name: "Health", ColorKey: "green", CreatedAt: base}
	s2 := &space.Space{ID: "s2", Name: "Work", ColorKey: "blue", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, "user1", s1))
	require.NoError(t, repo.Create(ctx, "user1", s2))
	require.Equal(t, "user1", s1.UserID)
	require.ErrorIs(t, repo.Create(ctx, "user1", s1), repository.ErrConflict)

	got, err := repo.Get(ctx, "user1", "s1")
	require.NoError(t, err)
	require.Equal(t, "Health", got.Name)
	require.True(t, got.CreatedAt.Equal(base))

	_, err = repo.Get(ctx, "user2", "s1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "s1", list[0].ID)

	got.ColorKey = "teal"
	require.NoError(t, repo.Update(ctx, "user1", got))
	got, err = repo.Get(ctx, "user1", "s1")
	require.NoError(t, err)
	require.Equal(t, "teal", got.ColorKey)

	require.ErrorIs(t, repo.Update(ctx, "user2", got), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "user1", "s1"))
	require.ErrorIs(t, repo.Delete(ctx, "user1", "s1"), repository.ErrNotFound)

	empty, err := repo.List(ctx, "user2")
	require.NoError(t, err)
	require.Empty(t, empty)

	// Ids are only unique per user.
	require.NoError(t, repo.Create(ctx, "user2", &space.Space{ID: "s2", Name: "Mine", ColorKey: "red", CreatedAt: base}))
	got, err = repo.Get(ctx, "user1", "s2")
	require.NoError(t, err)
	require.Equal(t, "Work", got.Name)
}
