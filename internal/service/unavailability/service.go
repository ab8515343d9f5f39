package unavailability

import (
	"context"
	"errors"
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/infra/cache"
	"github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// Service сервис недоступности ситтера по датам
type Service struct {
	repo          UnavailabilityRepository
	accountClient AccountServiceClient
	cache         ScheduleCache
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса недоступности
func NewService(
	repo UnavailabilityRepository,
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

// GetUnavailability возвращает календарь недоступности ситтера.
// Читает через кеш: промах или ошибка кеша деградируют до чтения из БД.
func (s *Service) GetUnavailability(ctx context.Context, sitterID int64) (*models.UnavailabilityResponse, error) {
	s.logger.Info("GetUnavailability: fetching calendar for sitter=%d", sitterID)

	// 1. Пробуем кеш
	key := cache.UnavailabilityKey(sitterID)
	var cached models.UnavailabilityResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.logger.Info("GetUnavailability: cache hit for sitter=%d", sitterID)
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("GetUnavailability: cache error for sitter=%d: %v", sitterID, err)
	}

	// 2. Читаем из БД
	cal, err := s.repo.GetBySitter(ctx, sitterID)
	if err != nil {
		s.logger.Error("GetUnavailability: repository error for sitter=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: GetUnavailability - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainCalendar(cal)

	// 3. Прогреваем кеш, ошибка не фатальна
	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("GetUnavailability: cache set failed for sitter=%d: %v", sitterID, err)
	}

	s.logger.Info("GetUnavailability: fetched %d dates for sitter=%d", len(cal), sitterID)
	return resp, nil
}

// SaveUnavailability целиком заменяет календарь недоступности ситтера
func (s *Service) SaveUnavailability(ctx context.Context, sitterID int64, req *models.SaveUnavailabilityRequest) (*models.UnavailabilityResponse, error) {
	s.logger.Info("SaveUnavailability: saving calendar for sitter=%d by user=%d", sitterID, req.UserID)

	// 1. Проверяем доступ и существование ситтера
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Конвертируем и валидируем календарь целиком
	cal, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("SaveUnavailability: invalid calendar for sitter=%d: %v", sitterID, err)
		return nil, err
	}

	// 3. Сохраняем в транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceForSitter(txCtx, sitterID, cal)
	})
	if err != nil {
		s.logger.Error("SaveUnavailability: save failed for sitter=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: SaveUnavailability - save failed: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("SaveUnavailability: saved %d dates for sitter=%d", len(cal), sitterID)
	return models.FromDomainCalendar(cal), nil
}

// ToggleFullDay переключает полную недоступность даты.
// Два последовательных переключения всегда возвращают календарь
// в исходное состояние: частичные интервалы сохраняются за маркером.
func (s *Service) ToggleFullDay(ctx context.Context, sitterID int64, req *models.ToggleDateRequest) (*models.ToggleDateResponse, error) {
	s.logger.Info("ToggleFullDay: toggling date=%s for sitter=%d", req.Date, sitterID)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	date, err := domain.ParseDateString(req.Date)
	if err != nil {
		s.logger.Warn("ToggleFullDay: invalid date %q for sitter=%d", req.Date, sitterID)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	// 2. Загружаем, переключаем и сохраняем в одной транзакции
	var fullDay bool
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cal, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: ToggleFullDay - repository error: %v", ErrInternal, err)
		}

		fullDay, err = cal.ToggleFullDay(date)
		if err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, cal)
	})
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn("ToggleFullDay: rejected for sitter=%d, date=%s: %v", sitterID, date, err)
			return nil, err
		}
		s.logger.Error("ToggleFullDay: failed for sitter=%d, date=%s: %v", sitterID, date, err)
		return nil, wrapInternal("ToggleFullDay", err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("ToggleFullDay: date=%s for sitter=%d is now fullDay=%t", date, sitterID, fullDay)
	return &models.ToggleDateResponse{Date: string(date), FullDay: fullDay}, nil
}

// AddSlot добавляет недоступный интервал к дате
func (s *Service) AddSlot(ctx context.Context, sitterID int64, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: adding slot for sitter=%d, date=%s, %s-%s", sitterID, req.Date, req.StartTime, req.EndTime)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	date, err := domain.ParseDateString(req.Date)
	if err != nil {
		s.logger.Warn("AddSlot: invalid date %q for sitter=%d", req.Date, sitterID)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	// 2. Загружаем, изменяем и сохраняем в одной транзакции
	var added domain.TimeSlot
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cal, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
		}

		added, err = cal.AddSlot(date, types.TimeString(req.StartTime), types.TimeString(req.EndTime))
		if err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, cal)
	})
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn("AddSlot: rejected for sitter=%d, date=%s: %v", sitterID, date, err)
			return nil, err
		}
		s.logger.Error("AddSlot: failed for sitter=%d, date=%s: %v", sitterID, date, err)
		return nil, wrapInternal("AddSlot", err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("AddSlot: added slot id=%s for sitter=%d on %s", added.ID, sitterID, date)
	resp := models.FromDomainSlot(added)
	return &resp, nil
}

// UpdateSlot изменяет границы недоступного интервала
func (s *Service) UpdateSlot(ctx context.Context, sitterID int64, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: updating slot id=%s for sitter=%d", slotID, sitterID)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	date, err := domain.ParseDateString(req.Date)
	if err != nil {
		s.logger.Warn("UpdateSlot: invalid date %q for sitter=%d", req.Date, sitterID)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	// 2. Загружаем, изменяем и сохраняем в одной транзакции
	var updated domain.TimeSlot
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cal, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: UpdateSlot - repository error: %v", ErrInternal, err)
		}

		updated, err = cal.UpdateSlot(date, slotID, req.ToDomainChange())
		if err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, cal)
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

// RemoveSlot удаляет недоступный интервал даты.
// Если интервал был последним на частичной дате, дата исчезает из календаря.
func (s *Service) RemoveSlot(ctx context.Context, sitterID, userID int64, dateStr, slotID string) error {
	s.logger.Info("RemoveSlot: removing slot id=%s for sitter=%d", slotID, sitterID)

	// 1. Проверяем доступ
	if err := s.checkAccess(ctx, sitterID, userID); err != nil {
		return err
	}

	date, err := domain.ParseDateString(dateStr)
	if err != nil {
		s.logger.Warn("RemoveSlot: invalid date %q for sitter=%d", dateStr, sitterID)
		return fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
	}

	// 2. Загружаем, удаляем и сохраняем в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cal, err := s.repo.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
		}

		if err := cal.RemoveSlot(date, slotID); err != nil {
			return err
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, cal)
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

// checkAccess проверяет, что календарь редактирует его владелец,
// и что ситтер существует в AccountService
func (s *Service) checkAccess(ctx context.Context, sitterID, userID int64) error {
	if sitterID != userID {
		s.logger.Warn("checkAccess: user=%d attempted to edit calendar of sitter=%d", userID, sitterID)
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

// invalidateCache сбрасывает кеш календаря после записи, ошибка не фатальна
func (s *Service) invalidateCache(ctx context.Context, sitterID int64) {
	if err := s.cache.Invalidate(ctx, cache.UnavailabilityKey(sitterID)); err != nil {
		s.logger.Warn("invalidateCache: failed for sitter=%d: %v", sitterID, err)
	}
}

// isDomainError отличает бизнес-отказы доменной модели от инфраструктурных ошибок
func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidSlot) ||
		errors.Is(err, domain.ErrSlotOverlap) ||
		errors.Is(err, domain.ErrSlotNotFound) ||
		errors.Is(err, domain.ErrInvalidDate)
}

func wrapInternal(method string, err error) error {
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
}
