package add_unavailability_slot

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
)

type UnavailabilityService interface {
	AddSlot(ctx context.Context, sitterID int64, req *models.AddSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
