package domain

import "errors"

var (
	// ErrInvalidTimeFormat reports a string that cannot be read as HH:MM, or a
	// minutes value outside [0, 1440).
	ErrInvalidTimeFormat = errors.New("invalid time of day")

	// ErrUnknownWeekday reports a day name outside the seven known variants.
	ErrUnknownWeekday = errors.New("unknown weekday")

	// ErrInvalidInput reports a well-formed but semantically invalid engine
	// argument (end before start, non-positive duration). The wrapping message
	// names the offending field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound reports a provider or affiliate missing from the directory.
	ErrNotFound = errors.New("not found")
)
