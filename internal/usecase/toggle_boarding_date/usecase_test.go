package toggle_boarding_date

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
)

type fakeBoardingRepo struct {
	set          domain.BoardingDateSet
	getErr       error
	replaceCalls int
}

func (f *fakeBoardingRepo) GetBySitter(_ context.Context, _ int64) (domain.BoardingDateSet, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.set == nil {
		return domain.NewBoardingDateSet(), nil
	}
	return f.set, nil
}

func (f *fakeBoardingRepo) ReplaceForSitter(_ context.Context, _ int64, set domain.BoardingDateSet) error {
	f.replaceCalls++
	f.set = set
	return nil
}

type fakeUnavailabilityRepo struct {
	fullDayDates map[domain.DateString]bool
	err          error
	calls        int
}

func (f *fakeUnavailabilityRepo) HasFullDayUnavailability(_ context.Context, _ int64, date domain.DateString) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.fullDayDates[date], nil
}

type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const testDate = "2026-03-15"

func newTestUseCase(repo *fakeBoardingRepo, unavail *fakeUnavailabilityRepo, c *fakeCache) *UseCase {
	return NewUseCase(repo, unavail, c, fakeTxManager{}, nopLogger{})
}

func TestUseCase_Execute_ToggleOnThenOff(t *testing.T) {
	repo := &fakeBoardingRepo{}
	c := &fakeCache{}
	uc := newTestUseCase(repo, &fakeUnavailabilityRepo{}, c)

	resp, err := uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 42, Date: testDate})
	require.NoError(t, err)
	assert.True(t, resp.Selected)
	assert.True(t, repo.set.Contains(testDate))
	assert.NotEmpty(t, c.invalidated)

	resp, err = uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 42, Date: testDate})
	require.NoError(t, err)
	assert.False(t, resp.Selected)
	assert.False(t, repo.set.Contains(testDate))
}

func TestUseCase_Execute_AddBlockedByFullDayUnavailability(t *testing.T) {
	repo := &fakeBoardingRepo{}
	unavail := &fakeUnavailabilityRepo{fullDayDates: map[domain.DateString]bool{testDate: true}}
	uc := newTestUseCase(repo, unavail, &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 42, Date: testDate})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDateUnavailable))
	assert.Zero(t, repo.replaceCalls)
}

func TestUseCase_Execute_RemovalAllowedOnBlockedDate(t *testing.T) {
	// Дата уже выбрана и позже стала полностью недоступной: снять ее можно
	repo := &fakeBoardingRepo{set: domain.NewBoardingDateSetFromDates([]domain.DateString{testDate})}
	unavail := &fakeUnavailabilityRepo{fullDayDates: map[domain.DateString]bool{testDate: true}}
	uc := newTestUseCase(repo, unavail, &fakeCache{})

	resp, err := uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 42, Date: testDate})
	require.NoError(t, err)
	assert.False(t, resp.Selected)
	assert.Zero(t, unavail.calls, "removal must not consult the unavailability calendar")
}

func TestUseCase_Execute_AccessDenied(t *testing.T) {
	repo := &fakeBoardingRepo{}
	uc := newTestUseCase(repo, &fakeUnavailabilityRepo{}, &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 7, Date: testDate})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
}

func TestUseCase_Execute_InvalidDate(t *testing.T) {
	uc := newTestUseCase(&fakeBoardingRepo{}, &fakeUnavailabilityRepo{}, &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 42, Date: "not-a-date"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDate))
}

func TestUseCase_Execute_RepositoryErrorIsInternal(t *testing.T) {
	repo := &fakeBoardingRepo{getErr: errors.New("db down")}
	uc := newTestUseCase(repo, &fakeUnavailabilityRepo{}, &fakeCache{})

	_, err := uc.Execute(context.Background(), &Request{SitterID: 42, UserID: 42, Date: testDate})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}
