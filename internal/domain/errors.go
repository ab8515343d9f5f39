package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlot is returned when a time slot is malformed
	// (bad HH:MM format or start >= end)
	ErrInvalidSlot = errors.New("domain: invalid time slot")

	// ErrSlotOverlap is returned when a slot intersects an existing slot
	// of the same day or date
	ErrSlotOverlap = errors.New("domain: slot overlaps an existing slot")

	// ErrSingleRangeOnly is returned when a second slot is added to a weekday
	// in walking mode, which allows one range per day
	ErrSingleRangeOnly = errors.New("domain: walking schedule allows a single time range per day")

	// ErrSlotNotFound is returned when a slot id is not present in the collection
	ErrSlotNotFound = errors.New("domain: slot not found")

	// ErrDateUnavailable is returned when a boarding date collides with a date
	// marked fully unavailable; distinct from validation and overlap errors
	ErrDateUnavailable = errors.New("domain: date is marked unavailable")

	// ErrInvalidWeekday is returned for unknown weekday names
	ErrInvalidWeekday = errors.New("domain: invalid weekday")

	// ErrInvalidDate is returned for malformed calendar dates
	ErrInvalidDate = errors.New("domain: invalid date")
)

// OverlapError carries the specific existing slot the candidate collides with,
// so callers can render a precise message ("overlaps with 09:00–10:30").
// errors.Is(err, ErrSlotOverlap) holds for every OverlapError.
type OverlapError struct {
	OverlappingWith TimeSlot
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("slot overlaps with existing slot %s-%s",
		e.OverlappingWith.Start, e.OverlappingWith.End)
}

func (e *OverlapError) Unwrap() error {
	return ErrSlotOverlap
}
