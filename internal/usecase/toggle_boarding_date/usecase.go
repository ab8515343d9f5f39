package toggle_boarding_date

import (
	"context"
	"errors"
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/infra/cache"
)

// UseCase use case переключения даты передержки.
// Кросс-модельная операция: добавление даты сверяется с календарем
// недоступности, снятие даты разрешено всегда.
type UseCase struct {
	boardingRepo       BoardingRepository
	unavailabilityRepo UnavailabilityRepository
	cache              ScheduleCache
	txManager          TransactionManager
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	boardingRepo BoardingRepository,
	unavailabilityRepo UnavailabilityRepository,
	scheduleCache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		boardingRepo:       boardingRepo,
		unavailabilityRepo: unavailabilityRepo,
		cache:              scheduleCache,
		txManager:          txManager,
		logger:             logger,
	}
}

// Execute выполняет переключение даты передержки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleBoardingDate: sitter=%d, user=%d, date=%s", req.SitterID, req.UserID, req.Date)

	// 1. Проверяем доступ
	if req.SitterID != req.UserID {
		uc.logger.Warn("ToggleBoardingDate: user=%d attempted to toggle dates of sitter=%d", req.UserID, req.SitterID)
		return nil, ErrAccessDenied
	}

	// 2. Валидация даты
	date, err := domain.ParseDateString(req.Date)
	if err != nil {
		uc.logger.Warn("ToggleBoardingDate: invalid date %q for sitter=%d", req.Date, req.SitterID)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	// 3. Переключаем в serializable-транзакции, чтобы конкурентный toggle
	//    той же даты не привел к потерянному обновлению
	var selected bool
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		set, err := uc.boardingRepo.GetBySitter(txCtx, req.SitterID)
		if err != nil {
			return fmt.Errorf("%w: Execute - boarding repository error: %v", ErrInternal, err)
		}

		// Календарь недоступности нужен только для проверки полного дня,
		// поэтому не загружаем его целиком
		blockedCal := domain.NewUnavailabilityCalendar()
		if !set.Contains(date) {
			blocked, err := uc.unavailabilityRepo.HasFullDayUnavailability(txCtx, req.SitterID, date)
			if err != nil {
				return fmt.Errorf("%w: Execute - unavailability repository error: %v", ErrInternal, err)
			}
			if blocked {
				blockedCal[date] = domain.DayUnavailability{Kind: domain.UnavailabilityFullDay}
			}
		}

		selected, err = set.Toggle(date, blockedCal)
		if err != nil {
			return err
		}

		return uc.boardingRepo.ReplaceForSitter(txCtx, req.SitterID, set)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDateUnavailable) || errors.Is(err, domain.ErrInvalidDate) {
			uc.logger.Warn("ToggleBoardingDate: rejected for sitter=%d, date=%s: %v", req.SitterID, date, err)
			return nil, err
		}
		uc.logger.Error("ToggleBoardingDate: failed for sitter=%d, date=%s: %v", req.SitterID, date, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Execute - %v", ErrInternal, err)
	}

	// 4. Сбрасываем кеш дат передержки, ошибка не фатальна
	if err := uc.cache.Invalidate(ctx, cache.BoardingKey(req.SitterID)); err != nil {
		uc.logger.Warn("ToggleBoardingDate: cache invalidation failed for sitter=%d: %v", req.SitterID, err)
	}

	uc.logger.Info("ToggleBoardingDate: date=%s for sitter=%d is now selected=%t", date, req.SitterID, selected)
	return &Response{Date: string(date), Selected: selected}, nil
}
