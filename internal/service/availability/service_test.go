package availability

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
	"github.com/sernanic/DogSitter-ScheduleService/internal/service/availability/models"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/ptr"
)

type fakeRepo struct {
	week         domain.WeekAvailability
	getErr       error
	replaceErr   error
	replaceCalls int
}

func (f *fakeRepo) GetBySitter(_ context.Context, _ int64) (domain.WeekAvailability, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.week == nil {
		return domain.NewWeekAvailability(), nil
	}
	return f.week, nil
}

func (f *fakeRepo) ReplaceForSitter(_ context.Context, _ int64, week domain.WeekAvailability) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaceCalls++
	f.week = week
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

type fakeTxManager struct {
	err error
}

func (f fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRepo, account *fakeAccountClient, c *fakeCache) *Service {
	return NewService(repo, account, c, fakeTxManager{}, nopLogger{})
}

func weekWithMondaySlot(t *testing.T) (domain.WeekAvailability, domain.TimeSlot) {
	t.Helper()
	week := domain.NewWeekAvailability()
	slot, err := week.AddSlot(domain.Monday, "09:00", "12:00", domain.ModeStandard)
	require.NoError(t, err)
	return week, slot
}

func TestService_GetAvailability_CacheMissReadsDBAndWarmsCache(t *testing.T) {
	week, slot := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	c := newFakeCache()
	svc := newTestService(repo, &fakeAccountClient{}, c)

	resp, err := svc.GetAvailability(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	require.Len(t, resp.Days["Monday"], 1)
	assert.Equal(t, slot.ID, resp.Days["Monday"][0].ID)
	assert.Equal(t, "09:00", resp.Days["Monday"][0].StartTime)

	_, cached := c.store[cache.AvailabilityKey(42)]
	assert.True(t, cached, "response must be cached after a miss")
}

func TestService_GetAvailability_CacheHitSkipsDB(t *testing.T) {
	week, slot := weekWithMondaySlot(t)
	c := newFakeCache()
	require.NoError(t, c.Set(context.Background(), cache.AvailabilityKey(42), models.FromDomainWeek(week)))

	// Ошибка репозитория доказывает, что чтение идет из кеша
	repo := &fakeRepo{getErr: errors.New("db down")}
	svc := newTestService(repo, &fakeAccountClient{}, c)

	resp, err := svc.GetAvailability(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, resp.Days["Monday"], 1)
	assert.Equal(t, slot.ID, resp.Days["Monday"][0].ID)
}

func TestService_GetAvailability_RepositoryError(t *testing.T) {
	repo := &fakeRepo{getErr: errors.New("db down")}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.GetAvailability(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestService_SaveAvailability_AccessDenied(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 7,
		Days:   map[string][]models.SlotPayload{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_SaveAvailability_SitterNotFound(t *testing.T) {
	repo := &fakeRepo{}
	account := &fakeAccountClient{err: accountservice.ErrSitterNotFound}
	svc := newTestService(repo, account, newFakeCache())

	_, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 42,
		Days:   map[string][]models.SlotPayload{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSitterNotFound))
}

func TestService_SaveAvailability_GracefulDegradationStillSaves(t *testing.T) {
	repo := &fakeRepo{}
	account := &fakeAccountClient{err: accountservice.ErrServiceDegraded}
	svc := newTestService(repo, account, newFakeCache())

	resp, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 42,
		Days: map[string][]models.SlotPayload{
			"monday": {{StartTime: "09:00", EndTime: "12:00"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Days["Monday"], 1)
	assert.Equal(t, 1, repo.replaceCalls)
}

func TestService_SaveAvailability_OverlapRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 42,
		Days: map[string][]models.SlotPayload{
			"monday": {
				{StartTime: "09:00", EndTime: "12:00"},
				{StartTime: "11:00", EndTime: "13:00"},
			},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotOverlap))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_SaveAvailability_InvalidatesCache(t *testing.T) {
	repo := &fakeRepo{}
	c := newFakeCache()
	c.store[cache.AvailabilityKey(42)] = `{"days":{}}`
	svc := newTestService(repo, &fakeAccountClient{}, c)

	_, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 42,
		Days: map[string][]models.SlotPayload{
			"friday": {{StartTime: "10:00", EndTime: "11:00"}},
		},
	})
	require.NoError(t, err)
	_, stillCached := c.store[cache.AvailabilityKey(42)]
	assert.False(t, stillCached, "stale schedule must leave the cache after a save")
}

func TestService_AddSlot_PersistsNewSlot(t *testing.T) {
	week, existing := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	resp, err := svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Day:       "monday",
		StartTime: "14:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEqual(t, existing.ID, resp.ID)
	require.Len(t, repo.week[domain.Monday], 2)
}

func TestService_AddSlot_OverlapSurfacesDomainError(t *testing.T) {
	week, _ := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Day:       "monday",
		StartTime: "11:00",
		EndTime:   "13:00",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotOverlap))
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestService_AddSlot_WalkingModeSingleRange(t *testing.T) {
	week, _ := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Day:       "monday",
		StartTime: "14:00",
		EndTime:   "16:00",
		Mode:      "walking",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSingleRangeOnly))
}

func TestService_AddSlot_InvalidDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Day:       "Funday",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidWeekday))
	assert.False(t, errors.Is(err, ErrInternal))
	assert.Zero(t, repo.replaceCalls)

	err = svc.RemoveSlot(context.Background(), 42, 42, "Funday", "some-slot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidWeekday))
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestService_SaveAvailability_InvalidDay(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 42,
		Days: map[string][]models.SlotPayload{
			"Funday": {{StartTime: "09:00", EndTime: "10:00"}},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidWeekday))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_SaveAvailability_DuplicateSlotIDRejected(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	// Одинаковый клиентский id на пересекающихся интервалах не должен
	// обходить проверку пересечений
	_, err := svc.SaveAvailability(context.Background(), 42, &models.SaveAvailabilityRequest{
		UserID: 42,
		Days: map[string][]models.SlotPayload{
			"monday": {
				{ID: "x", StartTime: "09:00", EndTime: "12:00"},
				{ID: "x", StartTime: "10:00", EndTime: "13:00"},
			},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidSlot))
	assert.Zero(t, repo.replaceCalls)
}

func TestService_AddSlot_UnknownMode(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.AddSlot(context.Background(), 42, &models.AddSlotRequest{
		UserID:    42,
		Day:       "monday",
		StartTime: "14:00",
		EndTime:   "16:00",
		Mode:      "hourly",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestService_UpdateSlot_MovesBoundaries(t *testing.T) {
	week, slot := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	resp, err := svc.UpdateSlot(context.Background(), 42, slot.ID, &models.UpdateSlotRequest{
		UserID:  42,
		Day:     "monday",
		EndTime: ptr.Ptr("13:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "13:00", resp.EndTime)
}

func TestService_UpdateSlot_NotFound(t *testing.T) {
	week, _ := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	_, err := svc.UpdateSlot(context.Background(), 42, "no-such-slot", &models.UpdateSlotRequest{
		UserID:  42,
		Day:     "monday",
		EndTime: ptr.Ptr("13:00"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotNotFound))
}

func TestService_RemoveSlot(t *testing.T) {
	week, slot := weekWithMondaySlot(t)
	repo := &fakeRepo{week: week}
	svc := newTestService(repo, &fakeAccountClient{}, newFakeCache())

	err := svc.RemoveSlot(context.Background(), 42, 42, "monday", slot.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.week[domain.Monday])

	err = svc.RemoveSlot(context.Background(), 42, 42, "monday", slot.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSlotNotFound))
}
