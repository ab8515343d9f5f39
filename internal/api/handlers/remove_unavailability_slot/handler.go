package remove_unavailability_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	unavailabilityService "github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgSitterNotFound  = "ситтер не найден"
	msgSlotNotFound    = "интервал не найден"
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

// Handle DELETE /api/v1/sitters/{sitterId}/unavailability/slots/{slotId}?date=2026-03-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId и slotId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /sitters/{id}/unavailability/slots/{slotId} - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}
	slotID := vars["slotId"]
	date := r.URL.Query().Get("date")

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sitters/{id}/unavailability/slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем интервал
	err = h.service.RemoveSlot(r.Context(), sitterID, userID, date, slotID)
	if err != nil {
		switch {
		case errors.Is(err, unavailabilityService.ErrAccessDenied):
			h.logger.Warn("DELETE /sitters/{id}/unavailability/slots/{slotId} - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, unavailabilityService.ErrSitterNotFound):
			h.logger.Warn("DELETE /sitters/{id}/unavailability/slots/{slotId} - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrSlotNotFound):
			h.logger.Warn("DELETE /sitters/{id}/unavailability/slots/{slotId} - Slot not found: sitter_id=%d, slot_id=%s", sitterID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("DELETE /sitters/{id}/unavailability/slots/{slotId} - Invalid date %q: sitter_id=%d", date, sitterID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /sitters/{id}/unavailability/slots/{slotId} - Failed to remove: sitter_id=%d, slot_id=%s, error=%v", sitterID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sitters/{id}/unavailability/slots/{slotId} - Slot removed: sitter_id=%d, slot_id=%s", sitterID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
