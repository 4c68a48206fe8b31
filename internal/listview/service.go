package listview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/invalidation"
)

// HabitLister loads a user's habits with their current completion state.
type HabitLister interface {
	List(ctx context.Context, userID string, opts habit.ListOptions) ([]habit.Habit, error)
}

// SpaceLister loads a user's spaces.
type SpaceLister interface {
	List(ctx context.Context, userID string) ([]space.Space, error)
}

// Subscriber delivers invalidation messages.
type Subscriber interface {
	Subscribe(fn invalidation.Handler) (unsubscribe func())
}

type cacheKey struct {
	userID string
	scope  Scope
	locale language.Tag
}

type cached struct {
	entries  []Entry
	loadedAt time.Time
}

// Service serves projected habit lists and caches them per user and scope
// until an invalidation message for that user arrives or the TTL passes.
type Service struct {
	habits HabitLister
	spaces SpaceLister
	locale language.Tag
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	generations map[string]uint64
	cache       map[cacheKey]cached
	unsubscribe func()
}

// NewService creates a list service collating in locale unless a request
// names another one. Caching is enabled only when bus is non-nil and ttl is
// positive.
func NewService(habits HabitLister, spaces SpaceLister, locale language.Tag, bus Subscriber, ttl time.Duration, logger *slog.Logger) *Service {
	s := &Service{
		habits:      habits,
		spaces:      spaces,
		locale:      Projector{Locale: locale}.locale(),
		ttl:         ttl,
		logger:      logger,
		now:         time.Now,
		generations: map[string]uint64{},
		cache:       map[cacheKey]cached{},
	}
	if bus != nil && ttl > 0 {
		s.unsubscribe = bus.Subscribe(s.invalidate)
	}
	return s
}

// Close stops listening for invalidations and disables the cache.
func (s *Service) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	clear(s.cache)
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// List returns the projected habit list of a user for a scope. A zero
// locale selects the service default.
func (s *Service) List(ctx context.Context, userID string, scope Scope, locale language.Tag) ([]Entry, error) {
	if locale == language.Und {
		locale = s.locale
	}
	key := cacheKey{userID: userID, scope: scope, locale: locale}

	s.mu.Lock()
	caching := s.unsubscribe != nil
	if c, ok := s.cache[key]; ok && s.now().Sub(c.loadedAt) < s.ttl {
		s.mu.Unlock()
		return cloneEntries(c.entries), nil
	}
	gen := s.generations[userID]
	s.mu.Unlock()

	habits, err := s.habits.List(ctx, userID, habit.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}
	spaces, err := s.spaces.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading spaces: %w", err)
	}
	entries := Projector{Locale: locale}.Project(habits, space.Index(spaces), scope)

	if caching {
		s.mu.Lock()
		// An invalidation that arrived while loading makes this result stale.
		if s.generations[userID] == gen && s.unsubscribe != nil {
			s.cache[key] = cached{entries: entries, loadedAt: s.now()}
		}
		s.mu.Unlock()
	}
	return cloneEntries(entries), nil
}

func (s *Service) invalidate(msg invalidation.Message) {
	if !msg.Has(invalidation.TopicHabits) && !msg.Has(invalidation.TopicSpaces) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[msg.UserID]++
	for key := range s.cache {
		if key.userID == msg.UserID {
			delete(s.cache, key)
		}
	}
	if s.logger != nil {
		s.logger.Debug("habit list cache invalidated", "user_id", msg.UserID, "topics", msg.Topics)
	}
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.Habit != nil {
			view := *e.Habit
			out[i].Habit = &view
		}
	}
	return out
}
