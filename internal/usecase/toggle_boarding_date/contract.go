package toggle_boarding_date

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
)

// BoardingRepository интерфейс репозитория дат передержки
type BoardingRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.BoardingDateSet, error)
	ReplaceForSitter(ctx context.Context, sitterID int64, set domain.BoardingDateSet) error
}

// UnavailabilityRepository интерфейс проверки полной недоступности даты
type UnavailabilityRepository interface {
	HasFullDayUnavailability(ctx context.Context, sitterID int64, date domain.DateString) (bool, error)
}

// ScheduleCache интерфейс кеша расписаний
type ScheduleCache interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
