package get_calendar_marks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
)

type fakeAvailabilityRepo struct {
	week   domain.WeekAvailability
	getErr error
}

func (f *fakeAvailabilityRepo) GetBySitter(_ context.Context, _ int64) (domain.WeekAvailability, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.week == nil {
		return domain.NewWeekAvailability(), nil
	}
	return f.week, nil
}

type fakeUnavailabilityRepo struct {
	cal domain.UnavailabilityCalendar
}

func (f *fakeUnavailabilityRepo) GetBySitter(_ context.Context, _ int64) (domain.UnavailabilityCalendar, error) {
	if f.cal == nil {
		return domain.NewUnavailabilityCalendar(), nil
	}
	return f.cal, nil
}

type fakeBoardingRepo struct {
	set domain.BoardingDateSet
}

func (f *fakeBoardingRepo) GetBySitter(_ context.Context, _ int64) (domain.BoardingDateSet, error) {
	if f.set == nil {
		return domain.NewBoardingDateSet(), nil
	}
	return f.set, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(avail *fakeAvailabilityRepo, unavail *fakeUnavailabilityRepo, boarding *fakeBoardingRepo) *UseCase {
	return NewUseCase(avail, unavail, boarding, nopLogger{})
}

func TestUseCase_Execute_PrecedenceAcrossModels(t *testing.T) {
	// 2026-03-16 понедельник
	week := domain.NewWeekAvailability()
	_, err := week.AddSlot(domain.Monday, "09:00", "12:00", domain.ModeStandard)
	require.NoError(t, err)

	cal := domain.NewUnavailabilityCalendar()
	cal["2026-03-17"] = domain.DayUnavailability{Kind: domain.UnavailabilityFullDay}
	_, err = cal.AddSlot("2026-03-18", "10:00", "11:00")
	require.NoError(t, err)

	// Полный день перекрывает передержку, передержка перекрывает частичную
	boarding := domain.NewBoardingDateSetFromDates([]domain.DateString{"2026-03-17", "2026-03-18", "2026-03-19"})

	uc := newTestUseCase(
		&fakeAvailabilityRepo{week: week},
		&fakeUnavailabilityRepo{cal: cal},
		&fakeBoardingRepo{set: boarding},
	)

	resp, err := uc.Execute(context.Background(), &Request{SitterID: 42, From: "2026-03-16", To: "2026-03-20"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-16", resp.From)
	assert.Equal(t, "2026-03-20", resp.To)

	assert.Equal(t, "available", resp.Marks["2026-03-16"].Kind)
	assert.False(t, resp.Marks["2026-03-16"].Selected)

	assert.Equal(t, "unavailable", resp.Marks["2026-03-17"].Kind)
	assert.True(t, resp.Marks["2026-03-17"].Selected)

	assert.Equal(t, "boarding", resp.Marks["2026-03-18"].Kind)
	assert.Equal(t, "boarding", resp.Marks["2026-03-19"].Kind)

	// 2026-03-20 пятница без слотов и отметок: даты нет в разметке
	_, marked := resp.Marks["2026-03-20"]
	assert.False(t, marked)
}

func TestUseCase_Execute_ClampsLongRange(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeUnavailabilityRepo{}, &fakeBoardingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{SitterID: 42, From: "2026-01-01", To: "2026-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", resp.From)
	// 92 дня от 1 января
	assert.Equal(t, "2026-04-02", resp.To)
}

func TestUseCase_Execute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeUnavailabilityRepo{}, &fakeBoardingRepo{})

	_, err := uc.Execute(context.Background(), &Request{SitterID: 42, From: "bad", To: "2026-03-20"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = uc.Execute(context.Background(), &Request{SitterID: 42, From: "2026-03-20", To: "2026-03-16"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestUseCase_Execute_RepositoryErrorIsInternal(t *testing.T) {
	uc := newTestUseCase(
		&fakeAvailabilityRepo{getErr: errors.New("db down")},
		&fakeUnavailabilityRepo{},
		&fakeBoardingRepo{},
	)

	_, err := uc.Execute(context.Background(), &Request{SitterID: 42, From: "2026-03-16", To: "2026-03-20"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}
