package toggle_date_unavailable

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
	msgInvalidDate     = "некорректная дата"
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

// Handle POST /api/v1/sitters/{sitterId}/unavailability/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sitters/{id}/unavailability/toggle - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sitters/{id}/unavailability/toggle - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req models.ToggleDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sitters/{id}/unavailability/toggle - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	// Переключаем полную недоступность даты
	result, err := h.service.ToggleFullDay(r.Context(), sitterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, unavailabilityService.ErrAccessDenied):
			h.logger.Warn("POST /sitters/{id}/unavailability/toggle - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, unavailabilityService.ErrSitterNotFound):
			h.logger.Warn("POST /sitters/{id}/unavailability/toggle - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("POST /sitters/{id}/unavailability/toggle - Invalid date %q: sitter_id=%d", req.Date, sitterID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /sitters/{id}/unavailability/toggle - Failed to toggle: sitter_id=%d, date=%s, error=%v", sitterID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sitters/{id}/unavailability/toggle - Toggled: sitter_id=%d, date=%s, full_day=%t", sitterID, result.Date, result.FullDay)
	handlers.RespondJSON(w, http.StatusOK, result)
}
