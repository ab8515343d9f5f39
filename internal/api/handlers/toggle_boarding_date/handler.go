package toggle_boarding_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sernanic/DogSitter-ScheduleService/internal/api/handlers"
	"github.com/sernanic/DogSitter-ScheduleService/internal/api/middleware"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	uc "github.com/sernanic/DogSitter-ScheduleService/internal/usecase/toggle_boarding_date"
)

const (
	msgInvalidSitterID = "некорректный ID ситтера"
	msgInvalidBody     = "некорректное тело запроса"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgInvalidDate     = "некорректная дата"
	msgDateUnavailable = "дата отмечена как полностью недоступная"
)

type toggleRequest struct {
	Date string `json:"date"`
}

type Handler struct {
	useCase ToggleBoardingDateUseCase
	logger  Logger
}

func NewHandler(useCase ToggleBoardingDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sitters/{sitterId}/boarding-dates/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sitterId из URL
	vars := mux.Vars(r)
	sitterID, err := strconv.ParseInt(vars["sitterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sitters/{id}/boarding-dates/toggle - Invalid sitter ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSitterID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sitters/{id}/boarding-dates/toggle - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем тело запроса
	var body toggleRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /sitters/{id}/boarding-dates/toggle - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Переключаем дату передержки
	result, err := h.useCase.Execute(r.Context(), &uc.Request{
		SitterID: sitterID,
		UserID:   userID,
		Date:     body.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, uc.ErrAccessDenied):
			h.logger.Warn("POST /sitters/{id}/boarding-dates/toggle - Access denied: sitter_id=%d, user_id=%d", sitterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrDateUnavailable):
			h.logger.Warn("POST /sitters/{id}/boarding-dates/toggle - Date conflict: sitter_id=%d, date=%s", sitterID, body.Date)
			handlers.RespondConflict(w, msgDateUnavailable)

		case errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("POST /sitters/{id}/boarding-dates/toggle - Invalid date %q: sitter_id=%d", body.Date, sitterID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /sitters/{id}/boarding-dates/toggle - Failed to toggle: sitter_id=%d, date=%s, error=%v", sitterID, body.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sitters/{id}/boarding-dates/toggle - Toggled: sitter_id=%d, date=%s, selected=%t", sitterID, result.Date, result.Selected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
