package toggle_date_unavailable

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
)

type UnavailabilityService interface {
	ToggleFullDay(ctx context.Context, sitterID int64, req *models.ToggleDateRequest) (*models.ToggleDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
