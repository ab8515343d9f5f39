package get_calendar_marks

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория еженедельной доступности
type AvailabilityRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.WeekAvailability, error)
}

// UnavailabilityRepository интерфейс репозитория недоступности по датам
type UnavailabilityRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.UnavailabilityCalendar, error)
}

// BoardingRepository интерфейс репозитория дат передержки
type BoardingRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.BoardingDateSet, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
