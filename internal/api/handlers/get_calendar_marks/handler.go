package get_calendar_marks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	uc "github.com/sernanic/DogSitter-ScheduleService/internal/usecase/get_calendar_marks"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidRange    = "некорректный диапазон дат"
)

type Handler struct {
	useCase GetCalendarMarksUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarMarksUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sitters/{sitterId}/calendar?from=2026-03-01&to=2026-03-31
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sitters/{id}/calendar - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	query := r.URL.Query()

	// Строим разметку календаря
	result, err := h.useCase.Execute(r.Context(), &uc.Request{
		SitterID: sitterID,
		From:     query.Get("from"),
		To:       query.Get("to"),
	})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrInvalidRange):
			h.logger.Warn("GET /sitters/{id}/calendar - Invalid range: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /sitters/{id}/calendar - Failed to build marks: sitter_id=%d, error=%v", sitterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sitters/{id}/calendar - Marks built: sitter_id=%d, count=%d", sitterID, len(result.Marks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
