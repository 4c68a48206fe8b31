// Package i18n provides the localized labels shown next to habit list entries.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/listview"
)

// Supported lists the label locales; the first one is the default.
var Supported = []language.Tag{language.German, language.English}

var (
	matcher  = language.NewMatcher(Supported)
	messages = mustBuildCatalog()
)

// Default returns the default label locale.
func Default() language.Tag {
	return Supported[0]
}

// Match resolves a locale string such as "en-US" to the closest supported tag.
// Empty or unparseable input yields the default.
func Match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return Default()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Default()
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return Supported[idx]
}

// Labels renders labels for one locale.
type Labels struct {
	tag     language.Tag
	printer *message.Printer
}

// For returns the labels of the closest supported locale.
func For(locale string) Labels {
	return ForTag(Match(locale))
}

// ForTag returns labels for a supported tag.
func ForTag(tag language.Tag) Labels {
	return Labels{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Tag returns the locale of the labels.
func (l Labels) Tag() language.Tag {
	return l.tag
}

// Frequency returns the frequency adverb, e.g. "täglich". NONE has none.
func (l Labels) Frequency(f habit.Frequency) string {
	switch f {
	case habit.FrequencyDaily, habit.FrequencyWeekly, habit.FrequencyMonthly:
		return l.printer.Sprintf("frequency." + string(f))
	}
	return ""
}

// Unit names a duration unit. Only the magnitude "1" takes the singular.
func (l Labels) Unit(unit habit.DurationUnit, magnitude string) string {
	if !unit.Valid() {
		return magnitude
	}
	form := "other"
	if magnitude == "1" {
		form = "one"
	}
	return l.printer.Sprintf("unit." + string(unit) + "." + form)
}

// Duration joins magnitude and unit name, e.g. "15 Minuten".
func (l Labels) Duration(magnitude string, unit habit.DurationUnit) string {
	return magnitude + " " + l.Unit(unit, magnitude)
}

// Progress renders "3x täglich (1/3)". Habits without a frequency get "".
func (l Labels) Progress(f habit.Frequency, times, count int) string {
	adverb := l.Frequency(f)
	if adverb == "" {
		return ""
	}
	return l.printer.Sprintf("progress", times, adverb, count, times)
}

// Divider is the heading of the completed section.
func (l Labels) Divider() string {
	return l.printer.Sprintf("divider")
}

// Scope returns the tab label of a scope.
func (l Labels) Scope(s listview.Scope) string {
	switch s {
	case listview.ScopeAll, listview.ScopeDaily, listview.ScopeWeekly, listview.ScopeMonthly:
		return l.printer.Sprintf("scope." + string(s))
	}
	return string(s)
}

func mustBuildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Default()))
	for tag, msgs := range map[language.Tag]map[string]string{
		language.German:  germanMessages,
		language.English: englishMessages,
	} {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}
