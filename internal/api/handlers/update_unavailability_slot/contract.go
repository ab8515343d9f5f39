package update_unavailability_slot

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
)

type UnavailabilityService interface {
	UpdateSlot(ctx context.Context, sitterID int64, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
