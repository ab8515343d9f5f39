package domain

import (
	"fmt"
	"time"
)

// DateString is a calendar date in "YYYY-MM-DD" form.
// Dates compare by value, so two DateStrings for the same calendar day
// are always equal regardless of how they were constructed.
type DateString string

// NewDateString formats a time.Time as a DateString (time of day is dropped)
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(DateFormat))
}

// ParseDateString validates and normalizes a "YYYY-MM-DD" string
func ParseDateString(s string) (DateString, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %v", s, err)
	}
	if t.Format(DateFormat) != s {
		return "", fmt.Errorf("invalid date %q, expected zero-padded YYYY-MM-DD", s)
	}
	return DateString(s), nil
}

// Time converts the date to a time.Time at midnight UTC
func (d DateString) Time() (time.Time, error) {
	return time.Parse(DateFormat, string(d))
}

// Weekday returns the weekly-schedule key for this date
func (d DateString) Weekday() (Weekday, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return WeekdayFromTime(t), nil
}

// String returns the "YYYY-MM-DD" representation
func (d DateString) String() string {
	return string(d)
}
