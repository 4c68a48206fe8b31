package habit

import (
	"regexp"
	"strconv"
	"strings"
)

// DurationUnit is the unit half of an encoded duration such as "30min".
type DurationUnit string

const (
	UnitMinutes    DurationUnit = "MINUTES"
	UnitHours      DurationUnit = "HOURS"
	UnitPieces     DurationUnit = "PIECES"
	UnitMeters     DurationUnit = "METERS"
	UnitKilometers DurationUnit = "KILOMETERS"
	UnitLiters     DurationUnit = "LITERS"
)

var unitCodes = map[DurationUnit]string{
	UnitMinutes:    "min",
	UnitHours:      "h",
	UnitPieces:     "pcs",
	UnitMeters:     "m",
	UnitKilometers: "km",
	UnitLiters:     "l",
}

var (
	displayPattern = regexp.MustCompile(`^([\d.,]+)(min|h|pcs|m|km|l)$`)
	valuePattern   = regexp.MustCompile(`^\d+([.,]\d+)?$`)
	nonTimePattern = regexp.MustCompile(`^\d+([.,]\d+)?(pcs|m|km|l)$`)
)

// Code returns the suffix used in encoded durations, or "" for unknown units.
func (u DurationUnit) Code() string {
	return unitCodes[u]
}

// Valid reports whether u is a known unit.
func (u DurationUnit) Valid() bool {
	_, ok := unitCodes[u]
	return ok
}

// TimeBased reports whether the unit measures time.
func (u DurationUnit) TimeBased() bool {
	return u == UnitMinutes || u == UnitHours
}

// UnitFromCode maps a suffix like "km" back to its unit.
func UnitFromCode(code string) (DurationUnit, bool) {
	for unit, c := range unitCodes {
		if c == code {
			return unit, true
		}
	}
	return "", false
}

// EncodeDuration joins a magnitude and a unit into the stored form, e.g. "2h".
func EncodeDuration(value string, unit DurationUnit) (string, error) {
	value = strings.TrimSpace(value)
	if !valuePattern.MatchString(value) || !unit.Valid() {
		return "", ErrInvalidDuration
	}
	return value + unit.Code(), nil
}

// SplitDuration parses an encoded duration into its magnitude and unit.
// ok is false when the string is not magnitude+known unit.
func SplitDuration(duration string) (magnitude string, unit DurationUnit, ok bool) {
	m := displayPattern.FindStringSubmatch(duration)
	if m == nil {
		return "", "", false
	}
	unit, _ = UnitFromCode(m[2])
	return m[1], unit, true
}

// ValidateDuration reports ErrInvalidDuration for durations that could be
// displayed but never completed, such as "1.2.3h".
func ValidateDuration(duration string) error {
	if _, _, ok := SplitDuration(duration); !ok {
		return ErrInvalidDuration
	}
	_, err := ParseDurationMinutes(duration)
	return err
}

// FormValues returns the edit-form magnitude and unit for a stored duration.
// Unparseable durations yield the form defaults "15" and MINUTES.
func FormValues(duration string) (string, DurationUnit) {
	magnitude, unit, ok := SplitDuration(strings.TrimSpace(duration))
	if !ok {
		return "15", UnitMinutes
	}
	return magnitude, unit
}

// ParseDurationMinutes returns the completion cooldown of a duration in
// minutes. Non-time units count as one minute.
func ParseDurationMinutes(duration string) (int, error) {
	d := strings.ToLower(strings.TrimSpace(duration))

	var numeric string
	var factor float64
	switch {
	case strings.HasSuffix(d, "min"):
		numeric, factor = strings.TrimSuffix(d, "min"), 1
	case strings.HasSuffix(d, "h"):
		numeric, factor = strings.TrimSuffix(d, "h"), 60
	case nonTimePattern.MatchString(d):
		return 1, nil
	default:
		return 0, ErrInvalidDuration
	}

	numeric = strings.TrimSpace(numeric)
	if !valuePattern.MatchString(numeric) {
		return 0, ErrInvalidDuration
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(numeric, ",", "."), 64)
	if err != nil {
		return 0, ErrInvalidDuration
	}
	return int(value * factor), nil
}

// IsTimeBased reports whether an encoded duration uses a time unit.
func IsTimeBased(duration string) bool {
	return !nonTimePattern.MatchString(strings.ToLower(strings.TrimSpace(duration)))
}
