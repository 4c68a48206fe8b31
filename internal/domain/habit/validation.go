package habit

import "strings"

// ValidateCreateInput validates fields required to create a habit.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.SpaceID) == "" {
		return ErrInvalidInput
	}
	if req.Frequency != "" && !req.Frequency.Valid() {
		return ErrInvalidInput
	}
	if req.Times < 0 {
		return ErrInvalidInput
	}
	return nil
}

// resolveDuration returns the encoded duration of a request, preferring an
// already encoded value over magnitude+unit.
func resolveDuration(encoded, value string, unit DurationUnit) (string, error) {
	if encoded = strings.TrimSpace(encoded); encoded != "" {
		if err := ValidateDuration(encoded); err != nil {
			return "", err
		}
		return encoded, nil
	}
	if unit == "" {
		unit = UnitMinutes
	}
	return EncodeDuration(value, unit)
}

// normalizeTimes forces a single repetition for habits without a frequency.
func normalizeTimes(freq Frequency, times int) int {
	if freq == FrequencyNone || times < 1 {
		return 1
	}
	return times
}
