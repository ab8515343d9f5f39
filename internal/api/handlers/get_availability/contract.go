package get_availability

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, sitterID int64) (*models.WeekAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
