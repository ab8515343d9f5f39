package boarding

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
)

// BoardingRepository интерфейс репозитория дат передержки
type BoardingRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.BoardingDateSet, error)
	ReplaceForSitter(ctx context.Context, sitterID int64, set domain.BoardingDateSet) error
}

// UnavailabilityRepository интерфейс чтения календаря недоступности.
// Даты передержки нельзя выбирать на полностью закрытых днях.
type UnavailabilityRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.UnavailabilityCalendar, error)
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetSitterWithGracefulDegradation(ctx context.Context, sitterID int64) (*accountservice.Sitter, error)
}

// ScheduleCache интерфейс кеша расписаний
type ScheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
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
