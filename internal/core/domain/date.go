package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time or timezone. Lifecycle dates and the
// reference instant are compared at this granularity only.
type Date struct {
	Time time.Time
}

// ParseDate parses an ISO 8601 calendar date (YYYY-MM-DD).
func ParseDate(raw string) (Date, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q", ErrInvalidInput, raw)
	}
	return Date{Time: parsed}, nil
}

// DateOf truncates an instant to its calendar date, discarding the clock.
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: date %s", ErrInvalidInput, string(data))
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}
