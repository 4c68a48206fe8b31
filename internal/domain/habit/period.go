package habit

import "time"

// InCurrentPeriod reports whether t falls in the same frequency window as now.
// Weeks are ISO weeks.
func InCurrentPeriod(freq Frequency, t, now time.Time) bool {
	t = t.In(now.Location())
	switch freq {
	case FrequencyDaily:
		return sameDay(t, now)
	case FrequencyWeekly:
		ty, tw := t.ISOWeek()
		ny, nw := now.ISOWeek()
		return ty == ny && tw == nw
	case FrequencyMonthly:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case FrequencyNone:
		return true
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// countInPeriod counts completions that fall in the habit's current window.
func countInPeriod(h *Habit, completions []Completion, now time.Time) int {
	n := 0
	for _, c := range completions {
		if InCurrentPeriod(h.Frequency, c.Timestamp, now) {
			n++
		}
	}
	return n
}

// applyCompletions recomputes Completed and CompletionsCount for now.
func applyCompletions(h *Habit, completions []Completion, now time.Time) {
	h.CompletionsCount = countInPeriod(h, completions, now)
	h.Completed = h.CompletionsCount >= target(h)
}

func target(h *Habit) int {
	if h.Times < 1 {
		return 1
	}
	return h.Times
}

func cooldownActive(h *Habit, last Completion, now time.Time, minutes int) bool {
	if !IsTimeBased(h.Duration) {
		if h.Frequency == FrequencyDaily {
			return now.Before(last.Timestamp.Add(time.Minute))
		}
		return sameDay(last.Timestamp.In(now.Location()), now)
	}
	return now.Before(last.Timestamp.Add(time.Duration(minutes) * time.Minute))
}
