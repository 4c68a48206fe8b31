package listview

import (
	"errors"
	"strings"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
)

// ErrUnknownScope indicates a scope name or tab index that doesn't exist.
var ErrUnknownScope = errors.New("unknown list scope")

// Scope is the selected time-window tab of the list.
type Scope string

const (
	ScopeAll     Scope = "ALL"
	ScopeDaily   Scope = "DAILY"
	ScopeWeekly  Scope = "WEEKLY"
	ScopeMonthly Scope = "MONTHLY"
)

// Scopes lists the scopes in tab order.
var Scopes = []Scope{ScopeAll, ScopeDaily, ScopeWeekly, ScopeMonthly}

// ParseScope accepts scope names case-insensitively; "" means ScopeAll.
func ParseScope(s string) (Scope, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(ScopeAll):
		return ScopeAll, nil
	case string(ScopeDaily):
		return ScopeDaily, nil
	case string(ScopeWeekly):
		return ScopeWeekly, nil
	case string(ScopeMonthly):
		return ScopeMonthly, nil
	}
	return "", ErrUnknownScope
}

// ScopeFromTab maps a tab index (0 = all … 3 = month) to its scope.
func ScopeFromTab(index int) (Scope, error) {
	if index < 0 || index >= len(Scopes) {
		return "", ErrUnknownScope
	}
	return Scopes[index], nil
}

// Includes reports whether a habit with frequency f belongs in the scope.
func (s Scope) Includes(f habit.Frequency) bool {
	switch s {
	case ScopeAll:
		return true
	case ScopeDaily:
		return f == habit.FrequencyDaily
	case ScopeWeekly:
		return f == habit.FrequencyWeekly
	case ScopeMonthly:
		return f == habit.FrequencyMonthly
	}
	return false
}
