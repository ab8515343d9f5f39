package add_availability_slot

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
	msgInvalidSlot     = "некорректный интервал"
	msgSlotConflict    = "интервал пересекается с существующим"
	msgSingleRange     = "для выгула доступен только один интервал в день"
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

// Handle POST /api/v1/sitters/{sitterId}/availability/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sitters/{id}/availability/slots - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sitters/{id}/availability/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var req models.AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sitters/{id}/availability/slots - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.UserID = userID

	// Добавляем интервал
	slot, err := h.service.AddSlot(r.Context(), sitterID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrAccessDenied):
			h.logger.Warn("POST /sitters/{id}/availability/slots - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availabilityService.ErrSitterNotFound):
			h.logger.Warn("POST /sitters/{id}/availability/slots - Sitter not found: sitter_id=%d", sitterID)
			handlers.RespondNotFound(w, msgSitterNotFound)

		case errors.Is(err, domain.ErrSingleRangeOnly):
			h.logger.Warn("POST /sitters/{id}/availability/slots - Single range limit: sitter_id=%d, day=%s", sitterID, req.Day)
			handlers.RespondConflict(w, msgSingleRange)

		case errors.Is(err, domain.ErrSlotOverlap):
			h.logger.Warn("POST /sitters/{id}/availability/slots - Overlap: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, domain.ErrInvalidSlot),
			errors.Is(err, domain.ErrInvalidWeekday),
			errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("POST /sitters/{id}/availability/slots - Invalid slot: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("POST /sitters/{id}/availability/slots - Failed to add slot: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sitters/{id}/availability/slots - Slot added: sitter_id=%d, slot_id=%s", sitterID, slot.ID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
