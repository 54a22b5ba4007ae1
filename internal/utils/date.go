package utils

import "time"

// StartCurrentDay truncates an instant to midnight in its own location.
func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay returns midnight of the following day in the same location.
func StartNextDay(t time.Time) time.Time {
	return StartCurrentDay(t.AddDate(0, 0, 1))
}

// Today returns midnight of the current day in the given location. The
// engine itself never calls this; only the transport layer does, to default
// an omitted reference date.
func Today(loc *time.Location) time.Time {
	return StartCurrentDay(time.Now().In(loc))
}
