package sqlite

import (
	"context"
	"testing"

	"github.com/habitxp/habits-mcp/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_Resolve(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAPIKeyRepository(db)

	require.NoError(t, repo.Create(ctx, "user1", "secret-token", "laptop"))
	require.ErrorIs(t, repo.Create(ctx, "user2", "secret-token", "dup"), repository.ErrConflict)

	userID, err := repo.ResolveUser(ctx, "secret-token")
	require.NoError(t, err)
	require.Equal(t, "user1", userID)

	var lastUsed *int64
	require.NoError(t, db.QueryRow("SELECT last_used FROM api_keys WHERE key_hash = ?", HashToken("secret-token")).Scan(&lastUsed))
	require.NotNil(t, lastUsed)

	_, err = repo.ResolveUser(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHashToken(t *testing.T) {
	require.Len(t, HashToken("x"), 64)
	require.Equal(t, HashToken("x"), HashToken("x"))
	require.NotEqual(t, HashToken("x"), HashToken("y"))
}
