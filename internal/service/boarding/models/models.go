package models

import (
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
)

// Request модели

// SaveBoardingDatesRequest запрос на полное сохранение дат передержки
type SaveBoardingDatesRequest struct {
	UserID int64    `json:"-"`
	Dates  []string `json:"dates"`
}

// ToDomain конвертирует запрос в доменный набор дат
func (r *SaveBoardingDatesRequest) ToDomain() (domain.BoardingDateSet, error) {
	dates := make([]domain.DateString, 0, len(r.Dates))
	for _, s := range r.Dates {
		date, err := domain.ParseDateString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
		}
		dates = append(dates, date)
	}
	return domain.NewBoardingDateSetFromDates(dates), nil
}

// Response модели

// BoardingDatesResponse набор дат передержки ситтера, отсортированный по возрастанию
type BoardingDatesResponse struct {
	Dates []string `json:"dates"`
}

// Методы конвертации

// FromDomainSet конвертирует доменный набор дат в DTO
func FromDomainSet(set domain.BoardingDateSet) *BoardingDatesResponse {
	dates := set.Dates()
	resp := &BoardingDatesResponse{Dates: make([]string, 0, len(dates))}
	for _, date := range dates {
		resp.Dates = append(resp.Dates, string(date))
	}
	return resp
}
