package domain

import (
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// UnavailabilityKind tags the two granularities of a day's unavailability
type UnavailabilityKind string

const (
	// UnavailabilityFullDay marks the whole date unavailable
	UnavailabilityFullDay UnavailabilityKind = "full_day"
	// UnavailabilityPartial marks specific time ranges of the date unavailable
	UnavailabilityPartial UnavailabilityKind = "partial"
)

// DayUnavailability is an explicit tagged union: either the whole day is
// unavailable, or a non-empty set of time ranges is. When a full-day mark is
// toggled on top of partial ranges, the ranges are kept so that toggling the
// mark back off restores them.
type DayUnavailability struct {
	Kind  UnavailabilityKind `json:"kind"`
	Slots []TimeSlot         `json:"slots,omitempty"`
}

// IsFullDay returns true when the entire date is blocked
func (d DayUnavailability) IsFullDay() bool {
	return d.Kind == UnavailabilityFullDay
}

// UnavailabilityCalendar maps calendar dates to their unavailability.
// A date without any unavailability has no entry; mutations that empty a date
// delete its key, so no dangling empty entries persist.
type UnavailabilityCalendar map[DateString]DayUnavailability

// NewUnavailabilityCalendar creates an empty calendar
func NewUnavailabilityCalendar() UnavailabilityCalendar {
	return make(UnavailabilityCalendar)
}

// ToggleFullDay flips the whole-day mark of a date. Two successive toggles of
// the same date always return the calendar to its original state:
//
//	absent            -> full day
//	full day, no slots -> absent
//	full day + slots   -> partial (the kept slots)
//	partial            -> full day (slots kept)
//
// Returns true when the date is fully unavailable after the toggle.
func (c UnavailabilityCalendar) ToggleFullDay(date DateString) (bool, error) {
	if _, err := ParseDateString(string(date)); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	entry, ok := c[date]
	if !ok {
		c[date] = DayUnavailability{Kind: UnavailabilityFullDay}
		return true, nil
	}

	if entry.Kind == UnavailabilityFullDay {
		if len(entry.Slots) == 0 {
			delete(c, date)
			return false, nil
		}
		c[date] = DayUnavailability{Kind: UnavailabilityPartial, Slots: entry.Slots}
		return false, nil
	}

	c[date] = DayUnavailability{Kind: UnavailabilityFullDay, Slots: entry.Slots}
	return true, nil
}

// AddSlot validates and appends an unavailable time range to a date.
// Unlike the weekly schedule, per-date collections have no single-slot cap.
func (c UnavailabilityCalendar) AddSlot(date DateString, start, end types.TimeString) (TimeSlot, error) {
	if _, err := ParseDateString(string(date)); err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	slot := NewTimeSlot(start, end)
	if err := slot.Validate(); err != nil {
		return TimeSlot{}, err
	}

	entry := c[date]
	if err := CheckOverlap(entry.Slots, slot); err != nil {
		return TimeSlot{}, err
	}

	entry.Slots = append(entry.Slots, slot)
	SortSlots(entry.Slots)
	if entry.Kind != UnavailabilityFullDay {
		entry.Kind = UnavailabilityPartial
	}
	c[date] = entry
	return slot, nil
}

// UpdateSlot merges a partial change into an existing range of a date,
// excluding the edited slot from its own overlap set. On failure the
// original slot is retained unchanged.
func (c UnavailabilityCalendar) UpdateSlot(date DateString, slotID string, change SlotChange) (TimeSlot, error) {
	entry, ok := c[date]
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: id=%s on %s", ErrSlotNotFound, slotID, date)
	}

	idx := indexOfSlot(entry.Slots, slotID)
	if idx < 0 {
		return TimeSlot{}, fmt.Errorf("%w: id=%s on %s", ErrSlotNotFound, slotID, date)
	}

	merged := change.Apply(entry.Slots[idx])
	if err := merged.Validate(); err != nil {
		return TimeSlot{}, err
	}
	if err := CheckOverlap(entry.Slots, merged); err != nil {
		return TimeSlot{}, err
	}

	entry.Slots[idx] = merged
	SortSlots(entry.Slots)
	c[date] = entry
	return merged, nil
}

// RemoveSlot removes a range from a date. When the last range of a
// partial date is removed, the date key itself is deleted.
func (c UnavailabilityCalendar) RemoveSlot(date DateString, slotID string) error {
	entry, ok := c[date]
	if !ok {
		return fmt.Errorf("%w: id=%s on %s", ErrSlotNotFound, slotID, date)
	}

	idx := indexOfSlot(entry.Slots, slotID)
	if idx < 0 {
		return fmt.Errorf("%w: id=%s on %s", ErrSlotNotFound, slotID, date)
	}

	entry.Slots = append(entry.Slots[:idx], entry.Slots[idx+1:]...)

	if len(entry.Slots) == 0 && entry.Kind != UnavailabilityFullDay {
		delete(c, date)
		return nil
	}

	c[date] = entry
	return nil
}

// IsDateBlocked reports whether the date is marked fully unavailable.
// Partial unavailability does not block a date outright.
func (c UnavailabilityCalendar) IsDateBlocked(date DateString) bool {
	entry, ok := c[date]
	return ok && entry.IsFullDay()
}

// ReplaceAll swaps in a full calendar loaded from the store, defensively
// sorting each date's ranges and dropping empty partial entries.
func (c UnavailabilityCalendar) ReplaceAll(mapping map[DateString]DayUnavailability) {
	for date := range c {
		delete(c, date)
	}
	for date, entry := range mapping {
		if entry.Kind != UnavailabilityFullDay && len(entry.Slots) == 0 {
			continue
		}
		SortSlots(entry.Slots)
		c[date] = entry
	}
}

// Validate re-checks every invariant of the full calendar before a bulk save.
// Slot ids must be unique per date because CheckOverlap excludes same-id pairs;
// a repeated id would otherwise let overlapping ranges through.
func (c UnavailabilityCalendar) Validate() error {
	for date, entry := range c {
		if _, err := ParseDateString(string(date)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		if entry.Kind != UnavailabilityFullDay && len(entry.Slots) == 0 {
			return fmt.Errorf("%w: date %s has an empty partial entry", ErrInvalidDate, date)
		}
		seen := make(map[string]struct{}, len(entry.Slots))
		for i, slot := range entry.Slots {
			if err := slot.Validate(); err != nil {
				return err
			}
			if _, dup := seen[slot.ID]; dup {
				return fmt.Errorf("%w: duplicate slot id %s on %s", ErrInvalidSlot, slot.ID, date)
			}
			seen[slot.ID] = struct{}{}
			if err := CheckOverlap(entry.Slots[:i], slot); err != nil {
				return err
			}
		}
	}
	return nil
}
