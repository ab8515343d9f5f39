package domain

import (
	"fmt"
	"sort"
)

// BoardingDateSet is the set of discrete calendar dates on which overnight
// boarding is offered. Membership is by calendar value, never by identity.
type BoardingDateSet map[DateString]struct{}

// NewBoardingDateSet creates an empty set
func NewBoardingDateSet() BoardingDateSet {
	return make(BoardingDateSet)
}

// NewBoardingDateSetFromDates builds a set from a date list, dropping duplicates
func NewBoardingDateSetFromDates(dates []DateString) BoardingDateSet {
	s := make(BoardingDateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

// Contains reports whether the date is selected
func (s BoardingDateSet) Contains(date DateString) bool {
	_, ok := s[date]
	return ok
}

// Toggle flips a date's membership. Removal is always allowed. Addition is
// rejected with ErrDateUnavailable when the unavailability calendar has the
// date marked fully unavailable; the set is left unchanged in that case.
// Returns true when the date is selected after the toggle.
func (s BoardingDateSet) Toggle(date DateString, unavailability UnavailabilityCalendar) (bool, error) {
	if _, err := ParseDateString(string(date)); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if s.Contains(date) {
		delete(s, date)
		return false, nil
	}

	if unavailability.IsDateBlocked(date) {
		return false, fmt.Errorf("%w: %s", ErrDateUnavailable, date)
	}

	s[date] = struct{}{}
	return true, nil
}

// Dates returns the selected dates in ascending calendar order
func (s BoardingDateSet) Dates() []DateString {
	dates := make([]DateString, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// Validate checks every member is a well-formed date
func (s BoardingDateSet) Validate() error {
	for d := range s {
		if _, err := ParseDateString(string(d)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
	}
	return nil
}
