package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/i18n"
	"github.com/habitxp/habits-mcp/internal/listview"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
	}{
		{"", language.German},
		{"de", language.German},
		{"de-AT", language.German},
		{"en", language.English},
		{"en-US", language.English},
		{"not a locale!", language.German},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, i18n.Match(tt.in))
		})
	}
}

func TestLabels_German(t *testing.T) {
	l := i18n.For("de")

	require.Equal(t, "täglich", l.Frequency(habit.FrequencyDaily))
	require.Equal(t, "wöchentlich", l.Frequency(habit.FrequencyWeekly))
	require.Empty(t, l.Frequency(habit.FrequencyNone))
	require.Equal(t, "3x täglich (1/3)", l.Progress(habit.FrequencyDaily, 3, 1))
	require.Empty(t, l.Progress(habit.FrequencyNone, 1, 0))
	require.Equal(t, "Abgeschlossen", l.Divider())
	require.Equal(t, "Heute", l.Scope(listview.ScopeDaily))
	require.Equal(t, "Alle", l.Scope(listview.ScopeAll))
}

func TestLabels_UnitSingularOnlyForOne(t *testing.T) {
	de := i18n.For("de")
	require.Equal(t, "Minute", de.Unit(habit.UnitMinutes, "1"))
	require.Equal(t, "Minuten", de.Unit(habit.UnitMinutes, "1.0"))
	require.Equal(t, "Stunden", de.Unit(habit.UnitHours, "2"))
	require.Equal(t, "Stück", de.Unit(habit.UnitPieces, "1"))
	require.Equal(t, "15 Minuten", de.Duration("15", habit.UnitMinutes))

	en := i18n.For("en")
	require.Equal(t, "hour", en.Unit(habit.UnitHours, "1"))
	require.Equal(t, "kilometers", en.Unit(habit.UnitKilometers, "2,5"))
	require.Equal(t, "7", en.Unit(habit.DurationUnit("YEARS"), "7"))
}

func TestLabels_English(t *testing.T) {
	l := i18n.For("en-GB")

	require.Equal(t, language.English, l.Tag())
	require.Equal(t, "2x weekly (0/2)", l.Progress(habit.FrequencyWeekly, 2, 0))
	require.Equal(t, "Completed", l.Divider())
	require.Equal(t, "Month", l.Scope(listview.ScopeMonthly))
}
