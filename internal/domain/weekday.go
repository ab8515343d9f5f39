package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a day-of-week name used as the key of the recurring weekly schedule
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// AllWeekdays lists the seven weekdays in calendar order (Monday first)
var AllWeekdays = []Weekday{
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
	Sunday,
}

// ParseWeekday parses a weekday name case-insensitively
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range AllWeekdays {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// WeekdayFromTime maps time.Weekday onto the weekly schedule key
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsValid returns true if the weekday is one of the seven known names
func (d Weekday) IsValid() bool {
	for _, known := range AllWeekdays {
		if d == known {
			return true
		}
	}
	return false
}
