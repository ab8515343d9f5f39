package remove_unavailability_slot

import "context"

type UnavailabilityService interface {
	RemoveSlot(ctx context.Context, sitterID, userID int64, dateStr, slotID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
