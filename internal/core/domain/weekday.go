package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Weekday string

const (
	WeekdayMonday    Weekday = "monday"
	WeekdayTuesday   Weekday = "tuesday"
	WeekdayWednesday Weekday = "wednesday"
	WeekdayThursday  Weekday = "thursday"
	WeekdayFriday    Weekday = "friday"
	WeekdaySaturday  Weekday = "saturday"
	WeekdaySunday    Weekday = "sunday"
)

// WeekdayOrder fixes the enumeration order used for sorted output.
var WeekdayOrder = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

// weekdayAliases maps every spelling present in the legacy directory data to
// its canonical variant. The legacy records mix accented and unaccented
// Spanish day names, plus English names from newer forms.
var weekdayAliases = map[string]Weekday{
	"monday":    WeekdayMonday,
	"lunes":     WeekdayMonday,
	"tuesday":   WeekdayTuesday,
	"martes":    WeekdayTuesday,
	"wednesday": WeekdayWednesday,
	"miercoles": WeekdayWednesday,
	"miércoles": WeekdayWednesday,
	"thursday":  WeekdayThursday,
	"jueves":    WeekdayThursday,
	"friday":    WeekdayFriday,
	"viernes":   WeekdayFriday,
	"saturday":  WeekdaySaturday,
	"sabado":    WeekdaySaturday,
	"sábado":    WeekdaySaturday,
	"sunday":    WeekdaySunday,
	"domingo":   WeekdaySunday,
}

// ParseWeekday normalizes a raw day name to its canonical variant.
func ParseWeekday(raw string) (Weekday, error) {
	day, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, raw)
	}
	return day, nil
}

// WeekdaySet is an unordered set of weekdays. Membership, not order, is what
// matters for overlap detection; Sorted gives a stable order for output.
type WeekdaySet map[Weekday]struct{}

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, day := range days {
		set[day] = struct{}{}
	}
	return set
}

// ParseWeekdaySet normalizes a list of raw day names into a set, collapsing
// duplicate spellings of the same day.
func ParseWeekdaySet(raw []string) (WeekdaySet, error) {
	set := make(WeekdaySet, len(raw))
	for _, name := range raw {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		set[day] = struct{}{}
	}
	return set, nil
}

func (s WeekdaySet) Contains(day Weekday) bool {
	_, ok := s[day]
	return ok
}

// Intersect returns the days present in both sets, in WeekdayOrder.
func (s WeekdaySet) Intersect(other WeekdaySet) []Weekday {
	shared := make([]Weekday, 0)
	for _, day := range WeekdayOrder {
		if s.Contains(day) && other.Contains(day) {
			shared = append(shared, day)
		}
	}
	return shared
}

// Sorted returns the members in WeekdayOrder.
func (s WeekdaySet) Sorted() []Weekday {
	days := make([]Weekday, 0, len(s))
	for _, day := range WeekdayOrder {
		if s.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseWeekdaySet(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}
