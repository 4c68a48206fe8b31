package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/repository"
)

// HabitRepository implements habit.Repository for SQLite
type HabitRepository struct {
	db *DB
}

// NewHabitRepository creates a new HabitRepository
func NewHabitRepository(db *DB) *HabitRepository {
	return &HabitRepository{db: db}
}

const habitColumns = `
	id, user_id, title, duration, frequency, times, completed,
	completions_count, space_id, deadline, created_at, updated_at
`

// Create inserts a new habit
func (r *HabitRepository) Create(ctx context.Context, userID string, h *habit.Habit) error {
	query := `INSERT INTO habits (` + habitColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		userID,
		h.Title,
		h.Duration,
		h.Frequency,
		h.Times,
		h.Completed,
		h.CompletionsCount,
		h.SpaceID,
		nullMillis(h.Deadline),
		toMillis(h.CreatedAt),
		toMillis(h.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	h.UserID = userID
	return nil
}

// Get retrieves a habit by ID
func (r *HabitRepository) Get(ctx context.Context, userID, id string) (*habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND user_id = ?`

	h, err := scanHabit(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

// Update stores every mutable field of a habit
func (r *HabitRepository) Update(ctx context.Context, userID string, h *habit.Habit) error {
	query := `
		UPDATE habits
		SET title = ?, duration = ?, frequency = ?, times = ?, completed = ?,
			completions_count = ?, space_id = ?, deadline = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		h.Title,
		h.Duration,
		h.Frequency,
		h.Times,
		h.Completed,
		h.CompletionsCount,
		h.SpaceID,
		nullMillis(h.Deadline),
		toMillis(h.UpdatedAt),
		h.ID,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a habit; its completions go with it
func (r *HabitRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return requireAffected(result)
}

// List returns a user's habits in creation order
func (r *HabitRepository) List(ctx context.Context, userID string, opts habit.ListOptions) ([]habit.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	args := []interface{}{userID}
	conditions := []string{}

	if opts.SpaceID != "" {
		conditions = append(conditions, "space_id = ?")
		args = append(args, opts.SpaceID)
	}
	if opts.Frequency != "" {
		conditions = append(conditions, "frequency = ?")
		args = append(args, opts.Frequency)
	}
	if len(conditions) > 0 {
		query += " AND " + joinConditions(conditions)
	}
	query += " ORDER BY created_at, id"

	return r.query(ctx, query, args...)
}

// ListExpired returns habits of all users whose deadline lies before the
// given time
func (r *HabitRepository) ListExpired(ctx context.Context, before time.Time) ([]habit.Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE deadline IS NOT NULL AND deadline < ?
		ORDER BY user_id, created_at, id
	`
	return r.query(ctx, query, toMillis(before))
}

// DeleteBySpace removes all habits of a space and reports how many went
func (r *HabitRepository) DeleteBySpace(ctx context.Context, userID, spaceID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE space_id = ? AND user_id = ?`, spaceID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete space habits: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted habits: %w", err)
	}
	return int(n), nil
}

func (r *HabitRepository) query(ctx context.Context, query string, args ...interface{}) ([]habit.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating habit rows: %w", err)
	}
	return habits, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHabit(row rowScanner) (*habit.Habit, error) {
	var h habit.Habit
	var deadline sql.NullInt64
	var createdAt, updatedAt int64
	if err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.Title,
		&h.Duration,
		&h.Frequency,
		&h.Times,
		&h.Completed,
		&h.CompletionsCount,
		&h.SpaceID,
		&deadline,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	h.Deadline = fromNullMillis(deadline)
	h.CreatedAt = fromMillis(createdAt)
	h.UpdatedAt = fromMillis(updatedAt)
	return &h, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
