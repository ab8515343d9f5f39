package models

import (
	"fmt"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/types"
)

// Request модели

// SlotPayload интервал времени в запросе на сохранение расписания
type SlotPayload struct {
	ID        string `json:"id,omitempty"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SaveAvailabilityRequest запрос на полное сохранение еженедельного расписания
type SaveAvailabilityRequest struct {
	UserID int64                    `json:"-"`
	Days   map[string][]SlotPayload `json:"days"`
}

// ToDomain конвертирует запрос в доменное расписание.
// Интервалы без ID получают новый идентификатор.
func (r *SaveAvailabilityRequest) ToDomain() (domain.WeekAvailability, error) {
	week := domain.NewWeekAvailability()

	for dayName, slots := range r.Days {
		day, err := domain.ParseWeekday(dayName)
		if err != nil {
			return nil, err
		}

		for _, payload := range slots {
			slot, err := payload.toDomainSlot()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", dayName, err)
			}
			week[day] = append(week[day], slot)
		}
	}

	for day := range week {
		domain.SortSlots(week[day])
	}
	if err := week.Validate(); err != nil {
		return nil, err
	}

	return week, nil
}

func (p SlotPayload) toDomainSlot() (domain.TimeSlot, error) {
	slot := domain.NewTimeSlot(types.TimeString(p.StartTime), types.TimeString(p.EndTime))
	if p.ID != "" {
		slot.ID = p.ID
	}
	if err := slot.Validate(); err != nil {
		return domain.TimeSlot{}, err
	}
	return slot, nil
}

// AddSlotRequest запрос на добавление интервала в день недели
type AddSlotRequest struct {
	UserID    int64  `json:"-"`
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Mode      string `json:"mode,omitempty"` // "walking" ограничивает день одним интервалом
}

// UpdateSlotRequest запрос на изменение границ интервала
type UpdateSlotRequest struct {
	UserID    int64   `json:"-"`
	Day       string  `json:"day"`
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

// WeekAvailabilityResponse еженедельное расписание ситтера
type WeekAvailabilityResponse struct {
	Days map[string][]SlotResponse `json:"days"`
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

// FromDomainWeek конвертирует доменное расписание в DTO.
// В ответе присутствуют все семь дней недели, даже пустые.
func FromDomainWeek(week domain.WeekAvailability) *WeekAvailabilityResponse {
	resp := &WeekAvailabilityResponse{
		Days: make(map[string][]SlotResponse, len(domain.AllWeekdays)),
	}

	for _, day := range domain.AllWeekdays {
		slots := make([]SlotResponse, 0, len(week[day]))
		for _, slot := range week[day] {
			slots = append(slots, FromDomainSlot(slot))
		}
		resp.Days[string(day)] = slots
	}

	return resp
}
