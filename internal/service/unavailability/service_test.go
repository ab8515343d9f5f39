package unavailability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/internal/infra/cache"
	"github.com/sernanic/DogSitter-ScheduleService/internal/integrations/accountservice"
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/unavailability/models"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/ptr"
)

type fakeRepo struct {
	cal          domain.UnavailabilityCalendar
	getErr       error
	replaceCalls int
}

func (f *fakeRepo) GetBySitter(_ context.Context, _ int64) (domain.UnavailabilityCalendar, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.cal == nil {
		return domain.NewUnavailabilityCalendar(), nil
	}
	return f.cal, nil
}

func (f *fakeRepo) ReplaceForSitter(_ context.Context, _ int64, cal domain.UnavailabilityCalendar) error {
	f.replaceCalls++
	f.cal = cal
	return nil
}

type fakeAccountClient struct {
	err error
}

func (f *fakeAccountClient) GetSitterWithGracefulDegradation(_ context.Context, sitterID int64) (*accountservice.Sitter, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &accountservice.Sitter{ID: sitterID, IsActive: true}, nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.store[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = string(b)
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.store, k)
	}
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

func newTestService(repo *fakeRepo, c *fakeCache) *Service {
	return NewService(repo, &fakeAccountClient{}, c, fakeTxManager{}, nopLogger{})
}

const testDate = "2026-03-15"

func TestService_ToggleFullDay_RoundTripPreservesSlots(t *testing.T) {
	repo := &fakeRepo{cal: domain.NewUnavailabilityCalendar()}
	date := domain.DateString(testDate)
	slot, err := repo.cal.AddSlot(date, "09:00", "12:00")
	require.NoError(t, err)

	svc := newTestService(repo, newFakeCache())

	// Первое переключение: дата полностью закрыта
	resp, err := svc.ToggleFullDay(context.Background(), 42, &models.ToggleDateRequest{UserID: 42, Date: testDate})
	require.NoError(t, err)
	assert.True(t, resp.FullDay)
	assert.True(t, repo.cal.IsDateBlocked(date))

	// Второе переключение: маркер снят, частичный интервал вернулся
	resp, err = svc.ToggleFullDay(context.Background(), 42, &models.ToggleDateRequest{UserID: 42, Date: testDate})
	require.NoError(t, err)
	assert.False(t, resp.FullDay)
	assert.False(t, repo.cal.IsDateBlocked(date))

	entry := repo.cal[date]
	require.Len(t, entry.Slots, 1)
	assert.Equal(t, slot.ID, entry.Slots[0].ID)
}

func TestService_ToggleFullDay_InvalidDate(t *testing.T) {
	svc := newTestService(&fakeRepo{}, newFakeCache())

	_, err := svc.ToggleFullDay(context.Background(), 42, &models.ToggleDateRequest{UserID: 42, Date: "15.03.2026"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDate))
}

func TestService_ToggleFullDay_AccessDenied(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, newFakeCache())

	_, err := svc.ToggleFullDay(context.Background(), 42, &models.ToggleDateRequest{UserID: 7, Date: testDate})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_SaveUnavailability_DropsEmptyPartialDates(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, newFakeCache())

	resp, err := svc.SaveUnavailability(context.Background(), 42, &models.SaveUnavailabilityRequest{
		UserID: 42,
		Dates: map[string]models.DayPayload{
			testDate:     {FullDay: true},
			"2026-03-16": {Slots: []models.SlotPayload{{StartTime: "10:00", EndTime: "11:00"}}},
			"2026-03-17": {}, // частичная без интервалов не сохраняется
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Dates, 2)
	assert.True(t, resp.Dates[testDate].FullDay)
	require.Len(t, resp.Dates["2026-03-16"].Slots, 1)
	_, kept := resp.Dates["2026-03-17"]
	assert.False(t, kept)
}

func TestService_SaveUnavailability_OverlapRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, newFakeCache())

	_, err := svc.SaveUnavailability(context.Background(), 42, &models.SaveUnavailabilityRequest{
		UserID: 42,
		Dates: map[string]models.DayPayload{
			testDate: {Slots: []models.SlotPayload{
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "11:00", EndTime: "13:00"},
			}},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotOverlap))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_SaveUnavailability_DuplicateSlotIDRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, newFakeCache())

	// Одинаковый клиентский id на пересекающихся интервалах не должен
	// обходить проверку пересечений
	_, err := svc.SaveUnavailability(context.Background(), 42, &models.SaveUnavailabilityRequest{
		UserID: 42,
		Dates: map[string]models.DayPayload{
			testDate: {Slots: []models.SlotPayload{
				{ID: "x", StartTime: "09:00", EndTime: "12:00"},
				{ID: "x", StartTime: "10:00", EndTime: "13:00"},
			}},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidSlot))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_GetUnavailability_CacheHitSkipsDB(t *testing.T) {
	c := newFakeCache()
	cached := &models.UnavailabilityResponse{
		Dates: map[string]models.DayResponse{testDate: {FullDay: true}},
	}
	require.NoError(t, c.Set(context.Background(), cache.UnavailabilityKey(42), cached))

	repo := &fakeRepo{getErr: errors.New("db down")}
	svc := newTestService(repo, c)

	resp, err := svc.GetUnavailability(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, resp.Dates[testDate].FullDay)
}

func TestService_AddSlot_ThenUpdateAndRemove(t *testing.T) {
	repo := &fakeRepo{}
	c := newFakeCache()
	c.store[cache.UnavailabilityKey(42)] = `{"dates":{}}`
	svc := newTestService(repo, c)

	added, err := svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Date:      testDate,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	_, stillCached := c.store[cache.UnavailabilityKey(42)]
	assert.False(t, stillCached, "write must invalidate the cached calendar")

	updated, err := svc.UpdateSlot(context.Background(), 42, added.ID, &models.UpdateSlotRequest{
		UserID:  42,
		Date:    testDate,
		EndTime: ptr.Ptr("13:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", updated.EndTime)

	err = svc.RemoveSlot(context.Background(), 42, 42, testDate, added.ID)
	require.NoError(t, err)

	err = svc.RemoveSlot(context.Background(), 42, 42, testDate, added.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotNotFound))
}

func TestService_AddSlot_OverlapSurfacesDomainError(t *testing.T) {
	repo := &fakeRepo{cal: domain.NewUnavailabilityCalendar()}
	_, err := repo.cal.AddSlot(domain.DateString(testDate), "09:00", "12:00")
	require.NoError(t, err)

	svc := newTestService(repo, newFakeCache())

	_, err = svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Date:      testDate,
		StartTime: "11:00",
		EndTime:   "13:00",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotOverlap))
	assert.False(t, errors.Is(err, ErrInternal))
}
