package save_boarding_dates

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/service/boarding/models"
)

type BoardingService interface {
	SaveBoardingDates(ctx context.Context, sitterID int64, req *models.SaveBoardingDatesRequest) (*models.BoardingDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
