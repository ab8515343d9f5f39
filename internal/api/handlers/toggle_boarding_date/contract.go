package toggle_boarding_date

import (
	"context"

	uc "github.com/sernanic/DogSitter-ScheduleService/internal/usecase/toggle_boarding_date"
)

type ToggleBoardingDateUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*uc.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
