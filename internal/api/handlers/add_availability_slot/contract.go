package add_availability_slot

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	AddSlot(ctx context.Context, sitterID int64, req *models.AddSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
