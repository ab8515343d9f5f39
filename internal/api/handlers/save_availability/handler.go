package save_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	availabilityService "github.com/sernanic/DogSitter-ScheduleService/internal/service/availability"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/availability/models"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgSitterNotFound  = "ситтер не найден"
	msgInvalidSchedule = "некорректное расписание"
	msgSlotConflict    = "интервалы пересекаются"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sitters/{sitterId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /sitters/{id}/availability - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sitters/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req models.SaveAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sitters/{id}/availability - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	// Сохраняем расписание
	week, err := h.service.SaveAvailability(r.Context(), sitterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrAccessDenied):
			h.logger.Warn("PUT /sitters/{id}/availability - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availabilityService.ErrSitterNotFound):
			h.logger.Warn("PUT /sitters/{id}/availability - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrSlotOverlap):
			h.logger.Warn("PUT /sitters/{id}/availability - Overlap: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, domain.ErrInvalidSlot), errors.Is(err, domain.ErrInvalidWeekday):
			h.logger.Warn("PUT /sitters/{id}/availability - Invalid schedule: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /sitters/{id}/availability - Failed to save: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sitters/{id}/availability - Schedule saved: sitter_id=%d", sitterID)
	handlers.RespondJSON(w, http.StatusOK, week)
}
