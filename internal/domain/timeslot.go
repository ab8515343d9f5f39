package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// TimeSlot represents a half-open [Start, End) time-of-day interval.
// Slots that merely touch (one ends exactly where another starts) do not overlap.
type TimeSlot struct {
	ID    string           `json:"id"`
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// NewTimeSlot builds a slot with a fresh id
func NewTimeSlot(start, end types.TimeString) TimeSlot {
	return TimeSlot{
		ID:    uuid.NewString(),
		Start: start,
		End:   end,
	}
}

// Validate checks the slot is well-formed: both bounds are valid HH:MM values
// and Start is strictly before End
func (s TimeSlot) Validate() error {
	if err := s.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSlot, err)
	}
	if err := s.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSlot, err)
	}
	if !s.Start.IsBefore(s.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSlot, s.Start, s.End)
	}
	return nil
}

// Overlaps reports whether two slots intersect under half-open semantics:
// candidate.Start < existing.End AND candidate.End > existing.Start.
// Identical slots overlap; adjacent slots do not.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.IsBefore(other.End) && s.End.IsAfter(other.Start)
}

// CheckOverlap tests a candidate against a collection of existing slots and
// returns an OverlapError naming the first conflicting slot, or nil.
// A slot with the candidate's own id is skipped, so updating a slot never
// conflicts with itself.
func CheckOverlap(existing []TimeSlot, candidate TimeSlot) error {
	for _, slot := range existing {
		if slot.ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(slot) {
			return &OverlapError{OverlappingWith: slot}
		}
	}
	return nil
}

// SortSlots orders slots ascending by start time, in place.
// Ordering is re-established after every mutation.
func SortSlots(slots []TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.IsBefore(slots[j].Start)
	})
}

// SlotChange is a partial update of a slot; nil fields keep the current value
type SlotChange struct {
	Start *types.TimeString `json:"start,omitempty"`
	End   *types.TimeString `json:"end,omitempty"`
}

// Apply merges the change into a copy of the slot and returns it
func (c SlotChange) Apply(slot TimeSlot) TimeSlot {
	merged := slot
	if c.Start != nil {
		merged.Start = *c.Start
	}
	if c.End != nil {
		merged.End = *c.End
	}
	return merged
}
