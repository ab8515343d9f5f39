package get_boarding_dates

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
	service BoardingService
	logger  Logger
}

func NewHandler(service BoardingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/boarding-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/boarding-dates - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем даты передержки
	dates, err := h.service.GetBoardingDates(r.Context(), sitterID)
	if err != nil {
		h.logger.Error("GET /sitters/{id}/boarding-dates - Failed to get dates: sitter_id=%d, error=%v", sitterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sitters/{id}/boarding-dates - Dates retrieved: sitter_id=%d", sitterID)
	handlers.RespondJSON(w, http.StatusOK, dates)
}
