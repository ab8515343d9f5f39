package domain

import "fmt"

// MarkKind classifies a calendar mark for the client widget
type MarkKind string

const (
	MarkAvailable   MarkKind = "available"
	MarkUnavailable MarkKind = "unavailable"
	MarkPartial     MarkKind = "partial"
	MarkBoarding    MarkKind = "boarding"
)

// CalendarMark is display-marking metadata for a single date.
// This is a derived view for rendering, not part of the model invariants.
type CalendarMark struct {
	Selected bool     `json:"selected"`
	Color    string   `json:"color"`
	Kind     MarkKind `json:"kind"`
}

// BuildCalendarMarks merges the weekly schedule, the unavailability calendar,
// and the boarding set into a date-keyed marking map over [from, to].
// Precedence per date: full-day unavailable > boarding > partial > weekly availability.
func BuildCalendarMarks(
	week WeekAvailability,
	unavailability UnavailabilityCalendar,
	boarding BoardingDateSet,
	from, to DateString,
) (map[DateString]CalendarMark, error) {
	start, err := from.Time()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	end, err := to.Time()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", ErrInvalidDate, to, from)
	}

	marks := make(map[DateString]CalendarMark)

	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		date := NewDateString(cursor)

		if entry, ok := unavailability[date]; ok {
			if entry.IsFullDay() {
				marks[date] = CalendarMark{Selected: true, Color: MarkColorUnavailable, Kind: MarkUnavailable}
				continue
			}
			if boarding.Contains(date) {
				marks[date] = CalendarMark{Selected: true, Color: MarkColorBoarding, Kind: MarkBoarding}
				continue
			}
			marks[date] = CalendarMark{Selected: true, Color: MarkColorPartial, Kind: MarkPartial}
			continue
		}

		if boarding.Contains(date) {
			marks[date] = CalendarMark{Selected: true, Color: MarkColorBoarding, Kind: MarkBoarding}
			continue
		}

		if len(week[WeekdayFromTime(cursor)]) > 0 {
			marks[date] = CalendarMark{Selected: false, Color: MarkColorAvailable, Kind: MarkAvailable}
		}
	}

	return marks, nil
}

// ClampRange limits a calendar range to at most maxDays days, preserving from
func ClampRange(from, to DateString, maxDays int) (DateString, error) {
	start, err := from.Time()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	end, err := to.Time()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if limit := start.AddDate(0, 0, maxDays-1); end.After(limit) {
		return NewDateString(limit), nil
	}
	return to, nil
}
