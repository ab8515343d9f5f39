package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/infra/cache"
	"github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/availability/models"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// Service сервис еженедельной доступности ситтера
type Service struct {
	repo          AvailabilityRepository
	accountClient AccountServiceClient
	cache         ScheduleCache
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	repo AvailabilityRepository,
	accountClient AccountServiceClient,
	scheduleCache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:          repo,
		accountClient: accountClient,
		cache:         scheduleCache,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetAvailability возвращает еженедельное расписание ситтера.
// Читает через кеш: промах или ошибка кеша деградируют до чтения из БД.
func (s *Service) GetAvailability(ctx context.Context, sitterID int64) (*models.WeekAvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching schedule for sitter=%d", sitterID)

	// 1. Пробуем кеш
	key := cache.AvailabilityKey(sitterID)
	var cached models.WeekAvailabilityResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.logger.Info("GetAvailability: cache hit for sitter=%d", sitterID)
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("GetAvailability: cache error for sitter=%d: %v", sitterID, err)
	}

	// 2. Читаем из БД
	week, err := s.repo.GetBySitter(ctx, sitterID)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for sitter=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainWeek(week)

	// 3. Прогреваем кеш, ошибка не фатальна
	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("GetAvailability: cache set failed for sitter=%d: %v", sitterID, err)
	}

	s.logger.Info("GetAvailability: fetched %d slots for sitter=%d", week.TotalSlots(), sitterID)
	return resp, nil
}

// SaveAvailability целиком заменяет еженедельное расписание ситтера.
// Запись выполняется в serializable-транзакции, чтобы конкурентные
// сохранения не теряли изменения друг друга.
func (s *Service) SaveAvailability(ctx context.Context, sitterID int64, req *models.SaveAvailabilityRequest) (*models.WeekAvailabilityResponse, error) {
	s.logger.Info("SaveAvailability: saving schedule for sitter=%d by user=%d", sitterID, req.UserID)

	// 1. Проверяем доступ и существование ситтера
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Конвертируем и валидируем расписание целиком
	week, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("SaveAvailability: invalid schedule for sitter=%d: %v", sitterID, err)
		return nil, err
	}

	// 3. Сохраняем в транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceForSitter(txCtx, sitterID, week)
	})
	if err != nil {
		s.logger.Error("SaveAvailability: save failed for sitter=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: SaveAvailability - save failed: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("SaveAvailability: saved %d slots for sitter=%d", week.TotalSlots(), sitterID)
	return models.FromDomainWeek(week), nil
}

// AddSlot добавляет интервал доступности в день недели.
// В режиме walking день ограничен одним интервалом.
func (s *Service) AddSlot(ctx context.Context, sitterID int64, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: adding slot for sitter=%d, day=%s, %s-%s", sitterID, req.Day, req.StartTime, req.EndTime)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидируем день и режим до открытия транзакции
	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		s.logger.Warn("AddSlot: invalid weekday %q for sitter=%d", req.Day, sitterID)
		return nil, err
	}
	mode := domain.ScheduleMode(req.Mode)
	if !mode.IsValid() {
		s.logger.Warn("AddSlot: invalid mode %q for sitter=%d", req.Mode, sitterID)
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	// 3. Загружаем, изменяем и сохраняем в одной транзакции
	var added domain.TimeSlot
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		week, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
		}

		added, err = week.AddSlot(day, types.TimeString(req.StartTime), types.TimeString(req.EndTime), mode)
		if err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, week)
	})
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn("AddSlot: rejected for sitter=%d: %v", sitterID, err)
			return nil, err
		}
		s.logger.Error("AddSlot: failed for sitter=%d: %v", sitterID, err)
		return nil, wrapInternal("AddSlot", err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("AddSlot: added slot id=%s for sitter=%d on %s", added.ID, sitterID, day)
	resp := models.FromDomainSlot(added)
	return &resp, nil
}

// UpdateSlot изменяет границы существующего интервала
func (s *Service) UpdateSlot(ctx context.Context, sitterID int64, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: updating slot id=%s for sitter=%d", slotID, sitterID)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		s.logger.Warn("UpdateSlot: invalid weekday %q for sitter=%d", req.Day, sitterID)
		return nil, err
	}

	// 2. Загружаем, изменяем и сохраняем в одной транзакции
	var updated domain.TimeSlot
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		week, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
		}

		updated, err = week.UpdateSlot(day, slotID, req.ToDomainChange())
		if err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, week)
	})
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn("UpdateSlot: rejected for sitter=%d, slot id=%s: %v", sitterID, slotID, err)
			return nil, err
		}
		s.logger.Error("UpdateSlot: failed for sitter=%d, slot id=%s: %v", sitterID, slotID, err)
		return nil, wrapInternal("UpdateSlot", err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("UpdateSlot: updated slot id=%s for sitter=%d", slotID, sitterID)
	resp := models.FromDomainSlot(updated)
	return &resp, nil
}

// RemoveSlot удаляет интервал из дня недели
func (s *Service) RemoveSlot(ctx context.Context, sitterID, userID int64, dayName, slotID string) error {
	s.logger.Info("RemoveSlot: removing slot id=%s for sitter=%d", slotID, sitterID)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, userID); err != nil {
		return err
	}

	day, err := domain.ParseWeekday(dayName)
	if err != nil {
		s.logger.Warn("RemoveSlot: invalid weekday %q for sitter=%d", dayName, sitterID)
		return err
	}

	// 2. Загружаем, удаляем и сохраняем в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		week, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
		}

		if err := week.RemoveSlot(day, slotID); err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, week)
	})
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn("RemoveSlot: rejected for sitter=%d, slot id=%s: %v", sitterID, slotID, err)
			return err
		}
		s.logger.Error("RemoveSlot: failed for sitter=%d, slot id=%s: %v", sitterID, slotID, err)
		return wrapInternal("RemoveSlot", err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("RemoveSlot: removed slot id=%s for sitter=%d", slotID, sitterID)
	return nil
}

// checkAccess проверяет, что расписание редактирует его владелец,
// и что ситтер существует в AccountService
func (s *Service) checkAccess(ctx context.Context, sitterID, userID int64) error {
	if sitterID != userID {
		s.logger.Warn("checkAccess: user=%d attempted to edit schedule of sitter=%d", userID, sitterID)
		return ErrAccessDenied
	}

	_, err := s.accountClient.GetSitterWithGracefulDegradation(ctx, sitterID)
	if err != nil {
		if errors.Is(err, accountservice.ErrSitterNotFound) {
			return ErrSitterNotFound
		}
		// AccountService недоступен: пропускаем проверку профиля
		s.logger.Warn("checkAccess: profile check skipped for sitter=%d: %v", sitterID, err)
	}

	return nil
}

// invalidateCache сбрасывает кеш расписания после записи, ошибка не фатальна
func (s *Service) invalidateCache(ctx context.Context, sitterID int64) {
	if err := s.cache.Invalidate(ctx, cache.AvailabilityKey(sitterID)); err != nil {
		s.logger.Warn("invalidateCache: failed for sitter=%d: %v", sitterID, err)
	}
}

// isDomainError отличает бизнес-отказы доменной модели от инфраструктурных ошибок
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidSlot) ||
		errors.Is(err, domain.ErrSlotOverlap) ||
		errors.Is(err, domain.ErrSingleRangeOnly) ||
		errors.Is(err, domain.ErrSlotNotFound) ||
		errors.Is(err, domain.ErrInvalidWeekday) ||
		errors.Is(err, domain.ErrInvalidDate) ||
		errors.Is(err, domain.ErrDateUnavailable)
}

func wrapInternal(method string, err error) error {
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
}
