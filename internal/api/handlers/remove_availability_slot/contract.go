package remove_availability_slot

import "context"

type AvailabilityService interface {
	RemoveSlot(ctx context.Context, sitterID, userID int64, dayName, slotID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
