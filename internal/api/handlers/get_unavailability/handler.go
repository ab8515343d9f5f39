package get_unavailability

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
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

// Handle GET /api/v1/sitters/{sitterId}/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/unavailability - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем календарь недоступности
	cal, err := h.service.GetUnavailability(r.Context(), sitterID)
	if err != nil {
		h.logger.Error("GET /sitters/{id}/unavailability - Failed to get calendar: sitter_id=%d, error=%v", sitterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sitters/{id}/unavailability - Calendar retrieved: sitter_id=%d", sitterID)
	handlers.RespondJSON(w, http.StatusOK, cal)
}
