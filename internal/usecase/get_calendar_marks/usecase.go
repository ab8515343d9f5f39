package get_calendar_marks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
)

// maxRangeDays ограничивает диапазон разметки тремя месяцами
const maxRangeDays = 92

// UseCase use case построения разметки календаря.
// Сводит еженедельное расписание, календарь недоступности и даты
// передержки в единую разметку по датам диапазона.
type UseCase struct {
	availabilityRepo   AvailabilityRepository
	unavailabilityRepo UnavailabilityRepository
	boardingRepo       BoardingRepository
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	unavailabilityRepo UnavailabilityRepository,
	boardingRepo BoardingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo:   availabilityRepo,
		unavailabilityRepo: unavailabilityRepo,
		boardingRepo:       boardingRepo,
		logger:             logger,
	}
}

// Execute строит разметку календаря ситтера за диапазон [from, to]
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarMarks: sitter=%d, from=%s, to=%s", req.SitterID, req.From, req.To)

	// 1. Валидация диапазона
	from, err := domain.ParseDateString(req.From)
	if err != nil {
		uc.logger.Warn("GetCalendarMarks: invalid from=%q for sitter=%d", req.From, req.SitterID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	to, err := domain.ParseDateString(req.To)
	if err != nil {
		uc.logger.Warn("GetCalendarMarks: invalid to=%q for sitter=%d", req.To, req.SitterID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if string(to) < string(from) {
		uc.logger.Warn("GetCalendarMarks: to=%s is before from=%s for sitter=%d", to, from, req.SitterID)
		return nil, fmt.Errorf("%w: to %s is before from %s", ErrInvalidRange, to, from)
	}

	// 2. Ограничиваем диапазон
	clampedTo, err := domain.ClampRange(from, to, maxRangeDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if clampedTo != to {
		uc.logger.Info("GetCalendarMarks: range clamped to %s for sitter=%d", clampedTo, req.SitterID)
		to = clampedTo
	}

	// 3. Загружаем все три модели расписания
	week, err := uc.availabilityRepo.GetBySitter(ctx, req.SitterID)
	if err != nil {
		uc.logger.Error("GetCalendarMarks: availability repository error for sitter=%d: %v", req.SitterID, err)
		return nil, fmt.Errorf("%w: Execute - availability repository error: %v", ErrInternal, err)
	}
	cal, err := uc.unavailabilityRepo.GetBySitter(ctx, req.SitterID)
	if err != nil {
		uc.logger.Error("GetCalendarMarks: unavailability repository error for sitter=%d: %v", req.SitterID, err)
		return nil, fmt.Errorf("%w: Execute - unavailability repository error: %v", ErrInternal, err)
	}
	boarding, err := uc.boardingRepo.GetBySitter(ctx, req.SitterID)
	if err != nil {
		uc.logger.Error("GetCalendarMarks: boarding repository error for sitter=%d: %v", req.SitterID, err)
		return nil, fmt.Errorf("%w: Execute - boarding repository error: %v", ErrInternal, err)
	}

	// 4. Строим разметку
	marks, err := domain.BuildCalendarMarks(week, cal, boarding, from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDate) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		return nil, fmt.Errorf("%w: Execute - %v", ErrInternal, err)
	}

	resp := &Response{
		From:  string(from),
		To:    string(to),
		Marks: make(map[string]Mark, len(marks)),
	}
	for date, mark := range marks {
		resp.Marks[string(date)] = Mark{
			Selected: mark.Selected,
			Color:    mark.Color,
			Kind:     string(mark.Kind),
		}
	}

	uc.logger.Info("GetCalendarMarks: built %d marks for sitter=%d", len(resp.Marks), req.SitterID)
	return resp, nil
}
