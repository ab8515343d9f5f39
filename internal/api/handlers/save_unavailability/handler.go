package save_unavailability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	unavailabilityService "github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgSitterNotFound  = "ситтер не найден"
	msgInvalidCalendar = "некорректный календарь недоступности"
	msgSlotConflict    = "интервалы пересекаются"
)

type Handler struct {
	service UnavailabilityService
	logger  Logger
}

func NewHandler(service UnavailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sitters/{sitterId}/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /sitters/{id}/unavailability - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sitters/{id}/unavailability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req models.SaveUnavailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sitters/{id}/unavailability - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	// Сохраняем календарь
	cal, err := h.service.SaveUnavailability(r.Context(), sitterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, unavailabilityService.ErrAccessDenied):
			h.logger.Warn("PUT /sitters/{id}/unavailability - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, unavailabilityService.ErrSitterNotFound):
			h.logger.Warn("PUT /sitters/{id}/unavailability - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrSlotOverlap):
			h.logger.Warn("PUT /sitters/{id}/unavailability - Overlap: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, domain.ErrInvalidSlot), errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("PUT /sitters/{id}/unavailability - Invalid calendar: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidCalendar)

		default:
			h.logger.Error("PUT /sitters/{id}/unavailability - Failed to save: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sitters/{id}/unavailability - Calendar saved: sitter_id=%d", sitterID)
	handlers.RespondJSON(w, http.StatusOK, cal)
}
