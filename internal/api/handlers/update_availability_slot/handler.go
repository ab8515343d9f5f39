package update_availability_slot

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
	msgSlotNotFound    = "интервал не найден"
	msgInvalidSlot     = "некорректный интервал"
	msgSlotConflict    = "интервал пересекается с существующим"
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

// Handle PATCH /api/v1/sitters/{sitterId}/availability/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId и slotId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}
	slotID := vars["slotId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	// Обновляем интервал
	slot, err := h.service.UpdateSlot(r.Context(), sitterID, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrAccessDenied):
			h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availabilityService.ErrSitterNotFound):
			h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrSlotNotFound):
			h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Slot not found: sitter_id=%d, slot_id=%s", sitterID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, domain.ErrSlotOverlap):
			h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Overlap: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, domain.ErrInvalidSlot), errors.Is(err, domain.ErrInvalidWeekday):
			h.logger.Warn("PATCH /sitters/{id}/availability/slots/{slotId} - Invalid slot: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PATCH /sitters/{id}/availability/slots/{slotId} - Failed to update: sitter_id=%d, slot_id=%s, error=%v", sitterID, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sitters/{id}/availability/slots/{slotId} - Slot updated: sitter_id=%d, slot_id=%s", sitterID, slotID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
