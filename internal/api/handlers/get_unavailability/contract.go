package get_unavailability

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
)

type UnavailabilityService interface {
	GetUnavailability(ctx context.Context, sitterID int64) (*models.UnavailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
