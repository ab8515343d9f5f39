package availability

import (
	"context"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
)

// AvailabilityRepository интерфейс репозитория еженедельной доступности
type AvailabilityRepository interface {
	GetBySitter(ctx context.Context, sitterID int64) (domain.WeekAvailability, error)
	ReplaceForSitter(ctx context.Context, sitterID int64, week domain.WeekAvailability) error
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
