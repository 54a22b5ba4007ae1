package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound for a minutes-since-midnight value.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time without date or timezone, comparable as a
// count of minutes since midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string. Hour must be in [0,23] and minute
// in [0,59]; anything else fails with ErrInvalidTimeFormat.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// TimeOfDayFromMinutes is the inverse of Minutes, defined only on [0, 1440).
func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return TimeOfDay{}, fmt.Errorf("%w: %d minutes out of range", ErrInvalidTimeFormat, minutes)
	}
	return TimeOfDay{Hour: minutes / 60, Minute: minutes % 60}, nil
}

// Minutes converts the time to its scalar form, minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimeFormat, string(data))
	}

	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}
