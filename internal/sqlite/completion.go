package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/repository"
)

// CompletionRepository implements habit.CompletionRepository for SQLite
type CompletionRepository struct {
	db *DB
}

// NewCompletionRepository creates a new CompletionRepository
func NewCompletionRepository(db *DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Add records a completion
func (r *CompletionRepository) Add(ctx context.Context, c *habit.Completion) error {
	query := `
		INSERT INTO habit_completions (habit_id, user_id, completed_at, duration_minutes)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, c.HabitID, c.UserID, toMillis(c.Timestamp), c.DurationMinutes)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to add completion: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		c.ID = id
	}
	return nil
}

// List returns a habit's completions, oldest first
func (r *CompletionRepository) List(ctx context.Context, userID, habitID string) ([]habit.Completion, error) {
	return r.query(ctx, `
		SELECT id, habit_id, user_id, completed_at, duration_minutes
		FROM habit_completions
		WHERE user_id = ? AND habit_id = ?
		ORDER BY completed_at, id
	`, userID, habitID)
}

// ListForUser returns the completions of every habit a user owns
func (r *CompletionRepository) ListForUser(ctx context.Context, userID string) ([]habit.Completion, error) {
	return r.query(ctx, `
		SELECT id, habit_id, user_id, completed_at, duration_minutes
		FROM habit_completions
		WHERE user_id = ?
		ORDER BY completed_at, id
	`, userID)
}

// DeleteBefore prunes a habit's completions older than before
func (r *CompletionRepository) DeleteBefore(ctx context.Context, userID, habitID string, before time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM habit_completions WHERE user_id = ? AND habit_id = ? AND completed_at < ?`,
		userID, habitID, toMillis(before),
	)
	if err != nil {
		return fmt.Errorf("failed to prune completions: %w", err)
	}
	return nil
}

// Clear removes all completions of a habit
func (r *CompletionRepository) Clear(ctx context.Context, userID, habitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habit_completions WHERE user_id = ? AND habit_id = ?`, userID, habitID); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	return nil
}

func (r *CompletionRepository) query(ctx context.Context, query string, args ...interface{}) ([]habit.Completion, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	completions := []habit.Completion{}
	for rows.Next() {
		var c habit.Completion
		var completedAt int64
		if err := rows.Scan(&c.ID, &c.HabitID, &c.UserID, &completedAt, &c.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		c.Timestamp = fromMillis(completedAt)
		completions = append(completions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completion rows: %w", err)
	}
	return completions, nil
}
