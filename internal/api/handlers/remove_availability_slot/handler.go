package remove_availability_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	availabilityService "github.com/sernanic/DogSitter-ScheduleService/internal/service/availability"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgSitterNotFound  = "ситтер не найден"
	msgSlotNotFound    = "интервал не найден"
	msgInvalidDay      = "некорректный день недели"
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

// Handle DELETE /api/v1/sitters/{sitterId}/availability/slots/{slotId}?day=Monday
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId и slotId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /sitters/{id}/availability/slots/{slotId} - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}
	slotID := vars["slotId"]
	day := r.URL.Query().Get("day")

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sitters/{id}/availability/slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем интервал
	err = h.service.RemoveSlot(r.Context(), sitterID, userID, day, slotID)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrAccessDenied):
			h.logger.Warn("DELETE /sitters/{id}/availability/slots/{slotId} - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availabilityService.ErrSitterNotFound):
			h.logger.Warn("DELETE /sitters/{id}/availability/slots/{slotId} - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrSlotNotFound):
			h.logger.Warn("DELETE /sitters/{id}/availability/slots/{slotId} - Slot not found: sitter_id=%d, slot_id=%s", sitterID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, domain.ErrInvalidWeekday):
			h.logger.Warn("DELETE /sitters/{id}/availability/slots/{slotId} - Invalid day %q: sitter_id=%d", day, sitterID)
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("DELETE /sitters/{id}/availability/slots/{slotId} - Failed to remove: sitter_id=%d, slot_id=%s, error=%v", sitterID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sitters/{id}/availability/slots/{slotId} - Slot removed: sitter_id=%d, slot_id=%s", sitterID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
