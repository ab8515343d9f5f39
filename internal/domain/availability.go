package domain

import (
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// ScheduleMode selects the validation rules of the weekly schedule.
// Walking visits allow a single time range per weekday; the standard mode
// allows any number of non-overlapping ranges.
type ScheduleMode string

const (
	ModeStandard ScheduleMode = "standard"
	ModeWalking  ScheduleMode = "walking"
)

// IsValid returns true for known schedule modes; the empty mode means standard
func (m ScheduleMode) IsValid() bool {
	return m == ModeStandard || m == ModeWalking || m == ""
}

// WeekAvailability maps each weekday to its ordered, non-overlapping time slots.
// All seven days are always present; a day without availability holds an empty slice.
// Every mutation validates in full before committing, so a failed operation
// leaves the prior state untouched.
type WeekAvailability map[Weekday][]TimeSlot

// NewWeekAvailability creates an empty schedule with all seven days present
func NewWeekAvailability() WeekAvailability {
	w := make(WeekAvailability, len(AllWeekdays))
	for _, day := range AllWeekdays {
		w[day] = []TimeSlot{}
	}
	return w
}

// AddSlot validates and appends a new slot to the given weekday.
// In walking mode a day that already has a slot rejects the addition with
// ErrSingleRangeOnly before any overlap logic runs.
func (w WeekAvailability) AddSlot(day Weekday, start, end types.TimeString, mode ScheduleMode) (TimeSlot, error) {
	if !day.IsValid() {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
	}

	if mode == ModeWalking && len(w[day]) >= WalkingMaxSlotsPerDay {
		return TimeSlot{}, fmt.Errorf("%w: %s already has a time range", ErrSingleRangeOnly, day)
	}

	slot := NewTimeSlot(start, end)
	if err := slot.Validate(); err != nil {
		return TimeSlot{}, err
	}
	if err := CheckOverlap(w[day], slot); err != nil {
		return TimeSlot{}, err
	}

	w[day] = append(w[day], slot)
	SortSlots(w[day])
	return slot, nil
}

// UpdateSlot merges a partial change into an existing slot, validates the merged
// result, and checks overlap against the other slots of the day (the slot being
// edited is excluded from its own overlap set). On any failure the original slot
// is retained unchanged.
func (w WeekAvailability) UpdateSlot(day Weekday, slotID string, change SlotChange) (TimeSlot, error) {
	if !day.IsValid() {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
	}

	idx := indexOfSlot(w[day], slotID)
	if idx < 0 {
		return TimeSlot{}, fmt.Errorf("%w: id=%s on %s", ErrSlotNotFound, slotID, day)
	}

	merged := change.Apply(w[day][idx])
	if err := merged.Validate(); err != nil {
		return TimeSlot{}, err
	}
	if err := CheckOverlap(w[day], merged); err != nil {
		return TimeSlot{}, err
	}

	w[day][idx] = merged
	SortSlots(w[day])
	return merged, nil
}

// RemoveSlot removes a slot unconditionally; removal cannot create an invalid state
func (w WeekAvailability) RemoveSlot(day Weekday, slotID string) error {
	if !day.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
	}

	idx := indexOfSlot(w[day], slotID)
	if idx < 0 {
		return fmt.Errorf("%w: id=%s on %s", ErrSlotNotFound, slotID, day)
	}

	w[day] = append(w[day][:idx], w[day][idx+1:]...)
	return nil
}

// ReplaceAll swaps in a full mapping loaded from the store. The source of truth
// is assumed pre-validated, but each day is defensively sorted and missing days
// are filled with empty slices.
func (w WeekAvailability) ReplaceAll(mapping map[Weekday][]TimeSlot) {
	for _, day := range AllWeekdays {
		slots := mapping[day]
		if slots == nil {
			slots = []TimeSlot{}
		}
		SortSlots(slots)
		w[day] = slots
	}
}

// TotalSlots counts slots across all weekdays
func (w WeekAvailability) TotalSlots() int {
	total := 0
	for _, slots := range w {
		total += len(slots)
	}
	return total
}

// Validate re-checks every invariant of the full mapping: known weekdays only,
// well-formed slots, unique slot ids, and no intra-day overlap. Used before
// bulk saves. Ids must be unique because CheckOverlap excludes same-id pairs;
// a repeated id would otherwise let overlapping slots through.
func (w WeekAvailability) Validate() error {
	for day, slots := range w {
		if !day.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidWeekday, day)
		}
		seen := make(map[string]struct{}, len(slots))
		for i, slot := range slots {
			if err := slot.Validate(); err != nil {
				return err
			}
			if _, dup := seen[slot.ID]; dup {
				return fmt.Errorf("%w: duplicate slot id %s on %s", ErrInvalidSlot, slot.ID, day)
			}
			seen[slot.ID] = struct{}{}
			if err := CheckOverlap(slots[:i], slot); err != nil {
				return err
			}
		}
	}
	return nil
}

func indexOfSlot(slots []TimeSlot, slotID string) int {
	for i, slot := range slots {
		if slot.ID == slotID {
			return i
		}
	}
	return -1
}
