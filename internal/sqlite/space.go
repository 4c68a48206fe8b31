package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/repository"
)

// SpaceRepository implements space.Repository for SQLite
type SpaceRepository struct {
	db *DB
}

// NewSpaceRepository creates a new SpaceRepository
func NewSpaceRepository(db *DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

// Create inserts a new space
func (r *SpaceRepository) Create(ctx context.Context, userID string, sp *space.Space) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO spaces (id, user_id, name, color_key, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, sp.ID, userID, sp.Name, sp.ColorKey, toMillis(sp.CreatedAt))
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}

	sp.UserID = userID
	return nil
}

// Get retrieves a space by ID
func (r *SpaceRepository) Get(ctx context.Context, userID, id string) (*space.Space, error) {
	var sp space.Space
	var createdAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, color_key, created_at
		FROM spaces
		WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&sp.ID, &sp.UserID, &sp.Name, &sp.ColorKey, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get space: %w", err)
	}

	sp.CreatedAt = fromMillis(createdAt)
	return &sp, nil
}

// List returns a user's spaces in creation order
func (r *SpaceRepository) List(ctx context.Context, userID string) ([]space.Space, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, color_key, created_at
		FROM spaces
		WHERE user_id = ?
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	spaces := []space.Space{}
	for rows.Next() {
		var sp space.Space
		var createdAt int64
		if err := rows.Scan(&sp.ID, &sp.UserID, &sp.Name, &sp.ColorKey, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		sp.CreatedAt = fromMillis(createdAt)
		spaces = append(spaces, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating space rows: %w", err)
	}
	return spaces, nil
}

// Update stores a space's name and color
func (r *SpaceRepository) Update(ctx context.Context, userID string, sp *space.Space) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE spaces SET name = ?, color_key = ?
		WHERE id = ? AND user_id = ?
	`, sp.Name, sp.ColorKey, sp.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a space
func (r *SpaceRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	return requireAffected(result)
}
