package save_boarding_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	boardingService "github.com/sernanic/DogSitter-ScheduleService/internal/service/boarding"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/boarding/models"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgSitterNotFound  = "ситтер не найден"
	msgInvalidDate     = "некорректная дата"
	msgDateUnavailable = "дата отмечена как полностью недоступная"
)

type Handler struct {
	service BoardingService
	logger  Logger
}

func NewHandler(service BoardingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sitters/{sitterId}/boarding-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /sitters/{id}/boarding-dates - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sitters/{id}/boarding-dates - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req models.SaveBoardingDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sitters/{id}/boarding-dates - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	// Сохраняем даты передержки
	dates, err := h.service.SaveBoardingDates(r.Context(), sitterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, boardingService.ErrAccessDenied):
			h.logger.Warn("PUT /sitters/{id}/boarding-dates - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, boardingService.ErrSitterNotFound):
			h.logger.Warn("PUT /sitters/{id}/boarding-dates - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrDateUnavailable):
			h.logger.Warn("PUT /sitters/{id}/boarding-dates - Date conflict: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondConflict(w, msgDateUnavailable)

		case errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("PUT /sitters/{id}/boarding-dates - Invalid date: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("PUT /sitters/{id}/boarding-dates - Failed to save: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sitters/{id}/boarding-dates - Dates saved: sitter_id=%d, count=%d", sitterID, len(dates.Dates))
	handlers.RespondJSON(w, http.StatusOK, dates)
}
