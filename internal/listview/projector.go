// Package listview turns a snapshot of habits and spaces into the ordered
// entries of the habit list: filtered by scope, sorted, with a single
// divider before the completed section.
package listview

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
)

// DefaultLocale is the collation locale used when none is configured.
var DefaultLocale = language.German

// Only min and h take part in ordering; every other unit sorts last.
var sortDurationPattern = regexp.MustCompile(`^(\d+)(min|h)$`)

// EntryKind distinguishes list rows.
type EntryKind string

const (
	KindHabit   EntryKind = "habit"
	KindDivider EntryKind = "divider"
)

// HabitView is the display shape of one habit.
type HabitView struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	DurationMagnitude string             `json:"duration_magnitude"`
	DurationUnit      habit.DurationUnit `json:"duration_unit"`
	TimesTarget       int                `json:"times_target"`
	Frequency         habit.Frequency    `json:"frequency"`
	Completed         bool               `json:"completed"`
	CompletionsCount  int                `json:"completions_count"`
	SpaceColorKey     string             `json:"space_color_key"`
}

// Entry is one row of the list: a habit or the completed-section divider.
type Entry struct {
	Kind  EntryKind  `json:"kind"`
	Habit *HabitView `json:"habit,omitempty"`
}

// IsDivider reports whether the entry is the divider.
func (e Entry) IsDivider() bool {
	return e.Kind == KindDivider
}

// Projector projects habit snapshots. The zero value collates in DefaultLocale.
type Projector struct {
	Locale language.Tag
}

// Project projects with the default locale.
func Project(habits []habit.Habit, spaces map[string]space.Space, scope Scope) []Entry {
	return Projector{}.Project(habits, spaces, scope)
}

// Project filters habits by scope, sorts them and shapes the survivors into
// entries. Habits whose space is missing are left out. It never fails and
// never modifies its inputs.
func (p Projector) Project(habits []habit.Habit, spaces map[string]space.Space, scope Scope) []Entry {
	filtered := make([]habit.Habit, 0, len(habits))
	for _, h := range habits {
		if scope.Includes(h.Frequency) {
			filtered = append(filtered, h)
		}
	}

	// collate.Collator keeps scratch buffers, so each call gets its own.
	coll := collate.New(p.locale())
	slices.SortStableFunc(filtered, func(a, b habit.Habit) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		if c := coll.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		return cmp.Compare(SortMinutes(a.Duration), SortMinutes(b.Duration))
	})

	entries := make([]Entry, 0, len(filtered)+1)
	dividerShown := false
	for _, h := range filtered {
		sp, ok := spaces[h.SpaceID]
		if !ok {
			continue
		}
		if h.Completed && !dividerShown {
			entries = append(entries, Entry{Kind: KindDivider})
			dividerShown = true
		}
		view := shape(h, sp)
		entries = append(entries, Entry{Kind: KindHabit, Habit: &view})
	}
	return entries
}

func (p Projector) locale() language.Tag {
	if p.Locale == language.Und {
		return DefaultLocale
	}
	return p.Locale
}

func shape(h habit.Habit, sp space.Space) HabitView {
	magnitude, unit := DisplayDuration(h.Duration)
	return HabitView{
		ID:                h.ID,
		Title:             h.Title,
		DurationMagnitude: magnitude,
		DurationUnit:      unit,
		TimesTarget:       h.Times,
		Frequency:         h.Frequency,
		Completed:         h.Completed,
		CompletionsCount:  h.CompletionsCount,
		SpaceColorKey:     sp.ColorKey,
	}
}

// SortMinutes is the ordering key of an encoded duration. Only whole
// minutes and hours are understood; anything else is math.MaxInt.
func SortMinutes(duration string) int {
	m := sortDurationPattern.FindStringSubmatch(duration)
	if m == nil {
		return math.MaxInt
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return math.MaxInt
	}
	if m[2] == "h" {
		if value > math.MaxInt/60 {
			return math.MaxInt
		}
		return value * 60
	}
	return value
}

// DisplayDuration splits an encoded duration for display, falling back to
// "0" minutes when it cannot be parsed.
func DisplayDuration(duration string) (string, habit.DurationUnit) {
	magnitude, unit, ok := habit.SplitDuration(duration)
	if !ok {
		return "0", habit.UnitMinutes
	}
	return magnitude, unit
}
