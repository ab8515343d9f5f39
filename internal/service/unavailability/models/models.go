package models

import (
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// Request модели

// SlotPayload интервал времени в запросе
type SlotPayload struct {
	ID        string `json:"id,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayPayload недоступность одной даты в запросе на полное сохранение
type DayPayload struct {
	FullDay bool          `json:"fullDay"`
	Slots   []SlotPayload `json:"slots,omitempty"`
}

// SaveUnavailabilityRequest запрос на полное сохранение календаря недоступности
type SaveUnavailabilityRequest struct {
	UserID int64                 `json:"-"`
	Dates  map[string]DayPayload `json:"dates"`
}

// ToDomain конвертирует запрос в доменный календарь.
// Интервалы без ID получают новый идентификатор.
func (r *SaveUnavailabilityRequest) ToDomain() (domain.UnavailabilityCalendar, error) {
	cal := domain.NewUnavailabilityCalendar()

	for dateStr, payload := range r.Dates {
		date, err := domain.ParseDateString(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, err)
		}

		entry := domain.DayUnavailability{Kind: domain.UnavailabilityPartial}
		if payload.FullDay {
			entry.Kind = domain.UnavailabilityFullDay
		}

		for _, p := range payload.Slots {
			slot := domain.NewTimeSlot(types.TimeString(p.StartTime), types.TimeString(p.EndTime))
			if p.ID != "" {
				slot.ID = p.ID
			}
			entry.Slots = append(entry.Slots, slot)
		}

		if entry.Kind == domain.UnavailabilityPartial && len(entry.Slots) == 0 {
			continue
		}

		domain.SortSlots(entry.Slots)
		cal[date] = entry
	}

	if err := cal.Validate(); err != nil {
		return nil, err
	}

	return cal, nil
}

// ToggleDateRequest запрос на переключение полной недоступности даты
type ToggleDateRequest struct {
	UserID int64  `json:"-"`
	Date   string `json:"date"`
}

// AddSlotRequest запрос на добавление недоступного интервала к дате
type AddSlotRequest struct {
	UserID    int64  `json:"-"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdateSlotRequest запрос на изменение границ недоступного интервала
type UpdateSlotRequest struct {
	UserID    int64   `json:"-"`
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ToDomainChange конвертирует запрос в доменное изменение интервала
func (r *UpdateSlotRequest) ToDomainChange() domain.SlotChange {
	var change domain.SlotChange
	if r.StartTime != nil {
		start := types.TimeString(*r.StartTime)
		change.Start = &start
	}
	if r.EndTime != nil {
		end := types.TimeString(*r.EndTime)
		change.End = &end
	}
	return change
}

// Response модели

// SlotResponse интервал времени в ответе
type SlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayResponse недоступность одной даты
type DayResponse struct {
	FullDay bool           `json:"fullDay"`
	Slots   []SlotResponse `json:"slots,omitempty"`
}

// UnavailabilityResponse календарь недоступности ситтера
type UnavailabilityResponse struct {
	Dates map[string]DayResponse `json:"dates"`
}

// ToggleDateResponse результат переключения полной недоступности
type ToggleDateResponse struct {
	Date    string `json:"date"`
	FullDay bool   `json:"fullDay"`
}

// Методы конвертации

// FromDomainSlot конвертирует доменный интервал в DTO
func FromDomainSlot(slot domain.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:        slot.ID,
		StartTime: slot.Start.String(),
		EndTime:   slot.End.String(),
	}
}

// FromDomainCalendar конвертирует доменный календарь в DTO
func FromDomainCalendar(cal domain.UnavailabilityCalendar) *UnavailabilityResponse {
	resp := &UnavailabilityResponse{
		Dates: make(map[string]DayResponse, len(cal)),
	}

	for date, entry := range cal {
		day := DayResponse{FullDay: entry.IsFullDay()}
		for _, slot := range entry.Slots {
			day.Slots = append(day.Slots, FromDomainSlot(slot))
		}
		resp.Dates[string(date)] = day
	}

	return resp
}
