package boarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/infra/cache"
	"github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/boarding/models"
)

// Service сервис дат передержки ситтера
type Service struct {
	repo           BoardingRepository
	unavailability UnavailabilityRepository
	accountClient  AccountServiceClient
	cache          ScheduleCache
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса дат передержки
func NewService(
	repo BoardingRepository,
	unavailabilityRepo UnavailabilityRepository,
	accountClient AccountServiceClient,
	scheduleCache ScheduleCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		repo:           repo,
		unavailability: unavailabilityRepo,
		accountClient:  accountClient,
		cache:          scheduleCache,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetBoardingDates возвращает даты передержки ситтера.
// Читает через кеш: промах или ошибка кеша деградируют до чтения из БД.
func (s *Service) GetBoardingDates(ctx context.Context, sitterID int64) (*models.BoardingDatesResponse, error) {
	s.logger.Info("GetBoardingDates: fetching dates for sitter=%d", sitterID)

	// 1. Пробуем кеш
	key := cache.BoardingKey(sitterID)
	var cached models.BoardingDatesResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.logger.Info("GetBoardingDates: cache hit for sitter=%d", sitterID)
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("GetBoardingDates: cache error for sitter=%d: %v", sitterID, err)
	}

	// 2. Читаем из БД
	set, err := s.repo.GetBySitter(ctx, sitterID)
	if err != nil {
		s.logger.Error("GetBoardingDates: repository error for sitter=%d: %v", sitterID, err)
		return nil, fmt.Errorf("%w: GetBoardingDates - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainSet(set)

	// 3. Прогреваем кеш, ошибка не фатальна
	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("GetBoardingDates: cache set failed for sitter=%d: %v", sitterID, err)
	}

	s.logger.Info("GetBoardingDates: fetched %d dates for sitter=%d", len(set), sitterID)
	return resp, nil
}

// SaveBoardingDates целиком заменяет набор дат передержки ситтера.
// Каждая дата проверяется против календаря недоступности: полностью
// закрытые дни отклоняются.
func (s *Service) SaveBoardingDates(ctx context.Context, sitterID int64, req *models.SaveBoardingDatesRequest) (*models.BoardingDatesResponse, error) {
	s.logger.Info("SaveBoardingDates: saving %d dates for sitter=%d by user=%d", len(req.Dates), sitterID, req.UserID)

	// 1. Проверяем доступ и существование ситтера
	if err := s.checkAccess(ctx, sitterID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Конвертируем и валидируем набор дат
	set, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("SaveBoardingDates: invalid dates for sitter=%d: %v", sitterID, err)
		return nil, err
	}

	// 3. Проверяем конфликты с недоступностью и сохраняем в транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cal, err := s.unavailability.GetBySitter(txCtx, sitterID)
		if err != nil {
			return fmt.Errorf("%w: SaveBoardingDates - unavailability repository error: %v", ErrInternal, err)
		}

		for _, date := range set.Dates() {
			if cal.IsDateBlocked(date) {
				return fmt.Errorf("%w: %s", domain.ErrDateUnavailable, date)
			}
		}

		return s.repo.ReplaceForSitter(txCtx, sitterID, set)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDateUnavailable) || errors.Is(err, domain.ErrInvalidDate) {
			s.logger.Warn("SaveBoardingDates: rejected for sitter=%d: %v", sitterID, err)
			return nil, err
		}
		s.logger.Error("SaveBoardingDates: save failed for sitter=%d: %v", sitterID, err)
		return nil, wrapInternal("SaveBoardingDates", err)
	}

	s.invalidateCache(ctx, sitterID)

	s.logger.Info("SaveBoardingDates: saved %d dates for sitter=%d", len(set), sitterID)
	return models.FromDomainSet(set), nil
}

// checkAccess проверяет, что даты редактирует их владелец,
// и что ситтер существует в AccountService
func (s *Service) checkAccess(ctx context.Context, sitterID, userID int64) error {
	if sitterID != userID {
		s.logger.Warn("checkAccess: user=%d attempted to edit boarding dates of sitter=%d", userID, sitterID)
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

// invalidateCache сбрасывает кеш дат передержки после записи, ошибка не фатальна
func (s *Service) invalidateCache(ctx context.Context, sitterID int64) {
	if err := s.cache.Invalidate(ctx, cache.BoardingKey(sitterID)); err != nil {
		s.logger.Warn("invalidateCache: failed for sitter=%d: %v", sitterID, err)
	}
}

func wrapInternal(method string, err error) error {
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
}
