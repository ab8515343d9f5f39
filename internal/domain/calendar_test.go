package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendarMarks(t *testing.T) {
	week := NewWeekAvailability()
	// 2026-03-16 is a Monday
	_, err := week.AddSlot(Monday, "09:00", "12:00", ModeStandard)
	require.NoError(t, err)

	cal := NewUnavailabilityCalendar()
	_, err = cal.ToggleFullDay("2026-03-17") // Tuesday, fully blocked
	require.NoError(t, err)
	_, err = cal.AddSlot("2026-03-18", "09:00", "10:00") // Wednesday, partial
	require.NoError(t, err)

	boarding := NewBoardingDateSetFromDates([]DateString{"2026-03-19"}) // Thursday

	marks, err := BuildCalendarMarks(week, cal, boarding, "2026-03-16", "2026-03-22")
	require.NoError(t, err)

	// Monday: weekly availability only
	monday := marks["2026-03-16"]
	assert.Equal(t, MarkAvailable, monday.Kind)
	assert.False(t, monday.Selected)
	assert.Equal(t, MarkColorAvailable, monday.Color)

	// Tuesday: full-day unavailability wins
	tuesday := marks["2026-03-17"]
	assert.Equal(t, MarkUnavailable, tuesday.Kind)
	assert.True(t, tuesday.Selected)

	// Wednesday: partial ranges
	wednesday := marks["2026-03-18"]
	assert.Equal(t, MarkPartial, wednesday.Kind)

	// Thursday: boarding selection
	thursday := marks["2026-03-19"]
	assert.Equal(t, MarkBoarding, thursday.Kind)
	assert.Equal(t, MarkColorBoarding, thursday.Color)

	// Friday has no schedule, no entry at all
	_, ok := marks["2026-03-20"]
	assert.False(t, ok)

	// 2026-03-22 is a Sunday with no schedule either
	_, ok = marks["2026-03-22"]
	assert.False(t, ok)
}

func TestBuildCalendarMarks_FullDayBeatsBoarding(t *testing.T) {
	week := NewWeekAvailability()
	cal := NewUnavailabilityCalendar()
	_, err := cal.ToggleFullDay(testDate)
	require.NoError(t, err)

	// A stale boarding selection on a now-blocked date renders as unavailable
	boarding := NewBoardingDateSetFromDates([]DateString{testDate})

	marks, err := BuildCalendarMarks(week, cal, boarding, testDate, testDate)
	require.NoError(t, err)
	assert.Equal(t, MarkUnavailable, marks[testDate].Kind)
}

func TestBuildCalendarMarks_InvalidRange(t *testing.T) {
	week := NewWeekAvailability()
	cal := NewUnavailabilityCalendar()
	boarding := NewBoardingDateSet()

	_, err := BuildCalendarMarks(week, cal, boarding, "2026-03-20", "2026-03-10")
	require.Error(t, err)

	_, err = BuildCalendarMarks(week, cal, boarding, "bad", "2026-03-10")
	require.Error(t, err)
}

func TestClampRange(t *testing.T) {
	to, err := ClampRange("2026-01-01", "2026-12-31", 31)
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-01-31"), to)

	to, err = ClampRange("2026-01-01", "2026-01-10", 31)
	require.NoError(t, err)
	assert.Equal(t, DateString("2026-01-10"), to)
}
