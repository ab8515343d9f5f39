package get_calendar_marks

import (
	"context"

	uc "github.com/sernanic/DogSitter-ScheduleService/internal/usecase/get_calendar_marks"
)

type GetCalendarMarksUseCase interface {
	Execute(ctx context.Context, req *uc.Request) (*uc.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
