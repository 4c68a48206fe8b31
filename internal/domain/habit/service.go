package habit

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

// completionRetention bounds how long completions are kept.
const completionRetention = 90 * 24 * time.Hour

// Service handles habit business logic.
type Service struct {
	habits      Repository
	completions CompletionRepository
	spaces      SpaceRepository
	activities  ActivityRepository
	publisher   Publisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new habit service. activities and publisher may be nil.
func NewService(
	habits Repository,
	completions CompletionRepository,
	spaces SpaceRepository,
	activities ActivityRepository,
	publisher Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{
		habits:      habits,
		completions: completions,
		spaces:      spaces,
		activities:  activities,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the service clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateRequest defines habit creation inputs. Duration, when set, is used
// as-is; otherwise DurationValue and DurationUnit are encoded.
type CreateRequest struct {
	ID            string
	Title         string
	Duration      string
	DurationValue string
	DurationUnit  DurationUnit
	Frequency     Frequency
	Times         int
	SpaceID       string
	Deadline      *time.Time
}

// UpdateRequest describes a partial habit update.
type UpdateRequest struct {
	ID            string
	Title         *string
	DurationValue *string
	DurationUnit  *DurationUnit
	Frequency     *Frequency
	Times         *int
	SpaceID       *string
}

// Create creates a new habit in an existing space.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Habit, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}
	duration, err := resolveDuration(req.Duration, req.DurationValue, req.DurationUnit)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSpace(ctx, userID, req.SpaceID); err != nil {
		return nil, err
	}

	freq := req.Frequency
	if freq == "" {
		freq = FrequencyDaily
	}
	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	now := s.now()
	h := &Habit{
		ID:        id,
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		Duration:  duration,
		Frequency: freq,
		Times:     normalizeTimes(freq, req.Times),
		SpaceID:   req.SpaceID,
		Deadline:  req.Deadline,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.habits.Create(ctx, userID, h); err != nil {
		return nil, fmt.Errorf("creating habit: %w", err)
	}

	s.record(ctx, userID, h, activity.TypeHabitCreated, fmt.Sprintf("created habit %q", h.Title))
	return h, nil
}

// Update applies a partial update to a habit.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*Habit, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}
	current, err := s.get(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidInput
		}
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.DurationValue != nil || req.DurationUnit != nil {
		value, unit := FormValues(current.Duration)
		if req.DurationValue != nil {
			value = *req.DurationValue
		}
		if req.DurationUnit != nil {
			unit = *req.DurationUnit
		}
		duration, err := EncodeDuration(value, unit)
		if err != nil {
			return nil, err
		}
		updated.Duration = duration
	}
	if req.Frequency != nil {
		if !req.Frequency.Valid() {
			return nil, ErrInvalidInput
		}
		updated.Frequency = *req.Frequency
	}
	if req.Times != nil {
		if *req.Times < 1 {
			return nil, ErrInvalidInput
		}
		updated.Times = *req.Times
	}
	updated.Times = normalizeTimes(updated.Frequency, updated.Times)
	if req.SpaceID != nil && *req.SpaceID != current.SpaceID {
		if err := s.ensureSpace(ctx, userID, *req.SpaceID); err != nil {
			return nil, err
		}
		updated.SpaceID = *req.SpaceID
	}
	updated.UpdatedAt = s.now()

	if err := s.habits.Update(ctx, userID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("updating habit: %w", err)
	}

	s.record(ctx, userID, &updated, activity.TypeHabitUpdated, fmt.Sprintf("updated habit %q", updated.Title))
	return &updated, nil
}

// Delete removes a habit and its completions.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	h, err := s.get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.completions.Clear(ctx, userID, id); err != nil {
		return fmt.Errorf("clearing completions: %w", err)
	}
	if err := s.habits.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrHabitNotFound
		}
		return fmt.Errorf("deleting habit: %w", err)
	}

	s.record(ctx, userID, h, activity.TypeHabitDeleted, fmt.Sprintf("deleted habit %q", h.Title))
	return nil
}

// Get returns a habit with its completion state for the current period.
func (s *Service) Get(ctx context.Context, userID, id string) (*Habit, error) {
	h, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.List(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("loading completions: %w", err)
	}
	applyCompletions(h, completions, s.now())
	return h, nil
}

// List returns a user's habits with completion state for the current period.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]Habit, error) {
	habits, err := s.habits.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	completions, err := s.completions.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading completions: %w", err)
	}

	byHabit := make(map[string][]Completion, len(habits))
	for _, c := range completions {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c)
	}
	now := s.now()
	for i := range habits {
		applyCompletions(&habits[i], byHabit[habits[i].ID], now)
	}
	return habits, nil
}

// Complete checks off a habit once, honoring the duration cooldown.
func (s *Service) Complete(ctx context.Context, userID, id string) (*CompleteResult, error) {
	h, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	minutes, err := ParseDurationMinutes(h.Duration)
	if err != nil {
		return nil, fmt.Errorf("habit %s: %w", id, err)
	}

	now := s.now()
	cutoff := now.Add(-completionRetention)
	if err := s.completions.DeleteBefore(ctx, userID, id, cutoff); err != nil {
		return nil, fmt.Errorf("pruning completions: %w", err)
	}
	completions, err := s.completions.List(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("loading completions: %w", err)
	}

	applyCompletions(h, completions, now)
	if h.Completed {
		return nil, ErrAlreadyCompleted
	}
	if last, ok := lastCompletion(completions, userID); ok && cooldownActive(h, last, now, minutes) {
		return nil, ErrCooldownActive
	}

	c := Completion{
		HabitID:         id,
		UserID:          userID,
		Timestamp:       now,
		DurationMinutes: minutes,
	}
	if err := s.completions.Add(ctx, &c); err != nil {
		return nil, fmt.Errorf("adding completion: %w", err)
	}

	applyCompletions(h, append(completions, c), now)
	h.UpdatedAt = now
	if err := s.habits.Update(ctx, userID, h); err != nil {
		return nil, fmt.Errorf("updating habit: %w", err)
	}

	s.record(ctx, userID, h, activity.TypeHabitCompleted,
		fmt.Sprintf("completed habit %q (%d/%d)", h.Title, h.CompletionsCount, target(h)))

	return &CompleteResult{
		Habit:     h,
		Completed: h.Completed,
		Remaining: max(0, target(h)-h.CompletionsCount),
	}, nil
}

// ResetExpired handles habits whose deadline passed before today without
// being completed: one-off habits are deleted, recurring ones start over.
// It returns the number of habits touched.
func (s *Service) ResetExpired(ctx context.Context) (int, error) {
	now := s.now()
	expired, err := s.habits.ListExpired(ctx, startOfDay(now))
	if err != nil {
		return 0, fmt.Errorf("listing expired habits: %w", err)
	}

	touched := 0
	for i := range expired {
		h := &expired[i]
		completions, err := s.completions.List(ctx, h.UserID, h.ID)
		if err != nil {
			return touched, fmt.Errorf("loading completions: %w", err)
		}
		applyCompletions(h, completions, now)
		if h.Completed {
			continue
		}

		if err := s.completions.Clear(ctx, h.UserID, h.ID); err != nil {
			return touched, fmt.Errorf("clearing completions: %w", err)
		}
		if h.Frequency == FrequencyNone {
			if err := s.habits.Delete(ctx, h.UserID, h.ID); err != nil {
				return touched, fmt.Errorf("deleting expired habit: %w", err)
			}
			s.record(ctx, h.UserID, h, activity.TypeHabitDeleted, fmt.Sprintf("deleted expired habit %q", h.Title))
		} else {
			h.Completed = false
			h.CompletionsCount = 0
			h.UpdatedAt = now
			if err := s.habits.Update(ctx, h.UserID, h); err != nil {
				return touched, fmt.Errorf("resetting habit: %w", err)
			}
			s.record(ctx, h.UserID, h, activity.TypeHabitReset, fmt.Sprintf("reset habit %q", h.Title))
		}
		touched++
	}

	if touched > 0 {
		s.log().Info("reset expired habits", "count", touched)
	}
	return touched, nil
}

func (s *Service) get(ctx context.Context, userID, id string) (*Habit, error) {
	h, err := s.habits.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("getting habit: %w", err)
	}
	return h, nil
}

func (s *Service) ensureSpace(ctx context.Context, userID, spaceID string) error {
	if _, err := s.spaces.Get(ctx, userID, spaceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSpaceNotFound
		}
		return fmt.Errorf("getting space: %w", err)
	}
	return nil
}

// record logs the activity and invalidates cached views of the user's habits.
func (s *Service) record(ctx context.Context, userID string, h *Habit, typ activity.ActivityType, summary string) {
	if s.activities != nil {
		if err := s.activities.Log(ctx, userID, &activity.ActivityEntry{
			HabitID:      &h.ID,
			SpaceID:      &h.SpaceID,
			ActivityType: typ,
			Summary:      summary,
		}); err != nil {
			s.log().Warn("failed to log activity", "type", typ, "habit_id", h.ID, "error", err)
		}
	}
	if s.publisher != nil {
		s.publisher.Publish(invalidation.Message{UserID: userID, Topics: []invalidation.Topic{invalidation.TopicHabits}})
	}
}

func (s *Service) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

func lastCompletion(completions []Completion, userID string) (Completion, bool) {
	var last Completion
	found := false
	for _, c := range completions {
		if c.UserID != userID {
			continue
		}
		if !found || c.Timestamp.After(last.Timestamp) {
			last = c
			found = true
		}
	}
	return last, found
}
