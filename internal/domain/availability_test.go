package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

func TestNewWeekAvailability_AllDaysPresent(t *testing.T) {
	week := NewWeekAvailability()

	require.Len(t, week, 7)
	for _, day := range AllWeekdays {
		slots, ok := week[day]
		require.True(t, ok, "day %s missing", day)
		assert.Empty(t, slots)
	}
}

func TestWeekAvailability_AddSlot_ThenOverlapThenAdjacent(t *testing.T) {
	week := NewWeekAvailability()

	// Empty Monday: first slot succeeds
	first, err := week.AddSlot(Monday, "09:00", "12:00", ModeStandard)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// 11:00-13:00 overlaps 09:00-12:00 and must cite it
	_, err = week.AddSlot(Monday, "11:00", "13:00", ModeStandard)
	require.Error(t, err)
	var overlapErr *OverlapError
	require.True(t, errors.As(err, &overlapErr))
	assert.Equal(t, first.ID, overlapErr.OverlappingWith.ID)
	assert.Equal(t, types.TimeString("09:00"), overlapErr.OverlappingWith.Start)
	assert.Equal(t, types.TimeString("12:00"), overlapErr.OverlappingWith.End)

	// Rejected add left Monday unchanged
	require.Len(t, week[Monday], 1)

	// 12:00-14:00 is adjacent, not overlapping
	_, err = week.AddSlot(Monday, "12:00", "14:00", ModeStandard)
	require.NoError(t, err)
	require.Len(t, week[Monday], 2)
}

func TestWeekAvailability_AddSlot_KeepsSorted(t *testing.T) {
	week := NewWeekAvailability()

	_, err := week.AddSlot(Tuesday, "15:00", "16:00", ModeStandard)
	require.NoError(t, err)
	_, err = week.AddSlot(Tuesday, "08:00", "09:00", ModeStandard)
	require.NoError(t, err)
	_, err = week.AddSlot(Tuesday, "11:00", "12:00", ModeStandard)
	require.NoError(t, err)

	slots := week[Tuesday]
	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("08:00"), slots[0].Start)
	assert.Equal(t, types.TimeString("11:00"), slots[1].Start)
	assert.Equal(t, types.TimeString("15:00"), slots[2].Start)
}

func TestWeekAvailability_AddSlot_InvalidInput(t *testing.T) {
	week := NewWeekAvailability()

	_, err := week.AddSlot(Monday, "12:00", "09:00", ModeStandard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSlot))

	_, err = week.AddSlot(Monday, "bad", "10:00", ModeStandard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSlot))

	_, err = week.AddSlot(Weekday("Caturday"), "09:00", "10:00", ModeStandard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWeekday))

	assert.Equal(t, 0, week.TotalSlots())
}

func TestWeekAvailability_WalkingMode_SingleRangeOnly(t *testing.T) {
	week := NewWeekAvailability()

	_, err := week.AddSlot(Wednesday, "09:00", "10:00", ModeWalking)
	require.NoError(t, err)

	// Second slot is rejected regardless of the proposed times,
	// with the cardinality error rather than an overlap error
	_, err = week.AddSlot(Wednesday, "18:00", "19:00", ModeWalking)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingleRangeOnly))
	assert.False(t, errors.Is(err, ErrSlotOverlap))
	require.Len(t, week[Wednesday], 1)

	// Other days are unaffected
	_, err = week.AddSlot(Thursday, "09:00", "10:00", ModeWalking)
	require.NoError(t, err)
}

func TestWeekAvailability_UpdateSlot_SelfExclusion(t *testing.T) {
	week := NewWeekAvailability()
	first, err := week.AddSlot(Monday, "09:00", "10:00", ModeStandard)
	require.NoError(t, err)
	_, err = week.AddSlot(Monday, "14:00", "15:00", ModeStandard)
	require.NoError(t, err)

	// Extending the first slot's end to 13:30 must not falsely flag
	// overlap against itself and does not reach the second slot
	newEnd := types.TimeString("13:30")
	updated, err := week.UpdateSlot(Monday, first.ID, SlotChange{End: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("13:30"), updated.End)
}

func TestWeekAvailability_UpdateSlot_GenuineOverlapRejected(t *testing.T) {
	week := NewWeekAvailability()
	first, err := week.AddSlot(Monday, "09:00", "10:00", ModeStandard)
	require.NoError(t, err)
	second, err := week.AddSlot(Monday, "14:00", "15:00", ModeStandard)
	require.NoError(t, err)

	// 09:00-14:30 now intersects the second slot: rejected
	newEnd := types.TimeString("14:30")
	_, err = week.UpdateSlot(Monday, first.ID, SlotChange{End: &newEnd})
	require.Error(t, err)

	var overlapErr *OverlapError
	require.True(t, errors.As(err, &overlapErr))
	assert.Equal(t, second.ID, overlapErr.OverlappingWith.ID)

	// The first slot must remain unchanged at 09:00-10:00
	require.Len(t, week[Monday], 2)
	assert.Equal(t, types.TimeString("09:00"), week[Monday][0].Start)
	assert.Equal(t, types.TimeString("10:00"), week[Monday][0].End)
}

func TestWeekAvailability_UpdateSlot_InvalidMergeRejected(t *testing.T) {
	week := NewWeekAvailability()
	first, err := week.AddSlot(Friday, "09:00", "10:00", ModeStandard)
	require.NoError(t, err)

	// Moving start past end makes the merged slot invalid
	newStart := types.TimeString("11:00")
	_, err = week.UpdateSlot(Friday, first.ID, SlotChange{Start: &newStart})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSlot))
	assert.Equal(t, types.TimeString("09:00"), week[Friday][0].Start)
}

func TestWeekAvailability_UpdateSlot_UnknownID(t *testing.T) {
	week := NewWeekAvailability()
	_, err := week.UpdateSlot(Monday, "nope", SlotChange{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotNotFound))
}

func TestWeekAvailability_RemoveSlot(t *testing.T) {
	week := NewWeekAvailability()
	first, err := week.AddSlot(Saturday, "09:00", "10:00", ModeStandard)
	require.NoError(t, err)
	second, err := week.AddSlot(Saturday, "11:00", "12:00", ModeStandard)
	require.NoError(t, err)

	require.NoError(t, week.RemoveSlot(Saturday, first.ID))
	require.Len(t, week[Saturday], 1)
	assert.Equal(t, second.ID, week[Saturday][0].ID)

	// Removing an already removed slot is an error, not a silent no-op
	err = week.RemoveSlot(Saturday, first.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotNotFound))

	// A day with zero slots keeps an empty sequence, not a missing key
	require.NoError(t, week.RemoveSlot(Saturday, second.ID))
	slots, ok := week[Saturday]
	require.True(t, ok)
	assert.Empty(t, slots)
}

func TestWeekAvailability_ReplaceAll_DefensiveSort(t *testing.T) {
	week := NewWeekAvailability()
	week.ReplaceAll(map[Weekday][]TimeSlot{
		Monday: {
			slot("b", "12:00", "13:00"),
			slot("a", "08:00", "09:00"),
		},
	})

	require.Len(t, week[Monday], 2)
	assert.Equal(t, "a", week[Monday][0].ID)
	assert.Equal(t, "b", week[Monday][1].ID)

	// Days absent from the mapping come back as empty sequences
	for _, day := range AllWeekdays[1:] {
		slots, ok := week[day]
		require.True(t, ok)
		assert.Empty(t, slots)
	}
}

func TestWeekAvailability_Validate(t *testing.T) {
	week := NewWeekAvailability()
	_, err := week.AddSlot(Monday, "09:00", "10:00", ModeStandard)
	require.NoError(t, err)
	require.NoError(t, week.Validate())

	// Force an overlapping pair past the mutators
	week[Monday] = append(week[Monday], slot("dup", "09:30", "11:00"))
	err = week.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSlotOverlap))
}

func TestWeekAvailability_Validate_DuplicateSlotID(t *testing.T) {
	// Overlap checks exclude same-id pairs, so a repeated id must be
	// rejected outright or overlapping slots would slip through a bulk save
	week := NewWeekAvailability()
	week[Monday] = []TimeSlot{
		slot("x", "09:00", "12:00"),
		slot("x", "10:00", "13:00"),
	}

	err := week.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSlot))

	// A repeated id is rejected even when the slots do not intersect
	week[Monday] = []TimeSlot{
		slot("x", "09:00", "10:00"),
		slot("x", "14:00", "15:00"),
	}
	err = week.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSlot))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, day)

	day, err = ParseWeekday("SATURDAY")
	require.NoError(t, err)
	assert.Equal(t, Saturday, day)

	_, err = ParseWeekday("Funday")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWeekday))
}
