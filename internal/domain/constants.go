package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Walking visits allow a single time range per weekday
const WalkingMaxSlotsPerDay = 1

// Calendar mark colors used by the client calendar widget
const (
	MarkColorAvailable   = "#4CAF50"
	MarkColorUnavailable = "#FF6B6B"
	MarkColorPartial     = "#FFB74D"
	MarkColorBoarding    = "#42A5F5"
)
