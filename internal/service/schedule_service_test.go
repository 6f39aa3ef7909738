package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "taskplanner/internal/errors"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

// MockScheduleRepository is a mock implementation of repository.ScheduleRepository.
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Schedule, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) Save(ctx context.Context, schedule *model.Schedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) DeleteIfOwned(ctx context.Context, id, ownerID uint) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ListByOwner(ctx context.Context, ownerID uint, filter repository.ScheduleFilter) ([]model.Schedule, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) ListInRange(ctx context.Context, ownerID uint, from, to time.Time, statuses []model.ScheduleStatus) ([]model.Schedule, error) {
	args := m.Called(ctx, ownerID, from, to, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Schedule), args.Error(1)
}

func newTestScheduleService(repo *MockScheduleRepository) *scheduleService {
	svc := NewScheduleService(repo).(*scheduleService)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestScheduleService_CreateAppliesDefaults(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Schedule) bool {
		return s.Status == model.ScheduleStatusScheduled &&
			s.ScheduleType == "meeting" &&
			s.UserID == 10
	})).Return(nil)

	svc := newTestScheduleService(mockRepo)
	schedule, err := svc.Create(context.Background(), 10, ScheduleCreate{
		Title:     "planning session",
		StartTime: time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, model.ScheduleStatusScheduled, schedule.Status)
	mockRepo.AssertExpectations(t)
}

func TestScheduleService_UpdatePartial(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	start := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	schedule := &model.Schedule{
		ID: 1, UserID: 10, Title: "planning session", Location: "room A",
		StartTime: start, Status: model.ScheduleStatusScheduled, ScheduleType: "meeting",
	}
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(10)).Return(schedule, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Schedule")).Return(nil)

	svc := newTestScheduleService(mockRepo)
	newLocation := "room B"
	updated, err := svc.Update(context.Background(), 1, 10, ScheduleUpdate{Location: &newLocation})

	require.NoError(t, err)
	assert.Equal(t, "room B", updated.Location)
	assert.Equal(t, "planning session", updated.Title)
	assert.Equal(t, start, updated.StartTime)
	assert.Equal(t, model.ScheduleStatusScheduled, updated.Status)
}

func TestScheduleService_CrossOwnerAccessLooksLikeAbsence(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("DeleteIfOwned", mock.Anything, uint(1), uint(99)).Return(false, nil)

	svc := newTestScheduleService(mockRepo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)

	err = svc.Delete(ctx, 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)
}

func TestScheduleService_UpcomingFiltersActiveStatuses(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	svc := newTestScheduleService(mockRepo)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 8).Add(-time.Nanosecond)
	mockRepo.On("ListInRange", mock.Anything, uint(10), start, end, []model.ScheduleStatus{
		model.ScheduleStatusScheduled,
		model.ScheduleStatusOngoing,
	}).Return([]model.Schedule{}, nil)

	_, err := svc.Upcoming(context.Background(), 10, 7)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestScheduleService_TodayCoversTheWholeDay(t *testing.T) {
	mockRepo := new(MockScheduleRepository)
	svc := newTestScheduleService(mockRepo)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	mockRepo.On("ListInRange", mock.Anything, uint(10), start, end, []model.ScheduleStatus(nil)).
		Return([]model.Schedule{{ID: 1, Title: "standup"}}, nil)

	schedules, err := svc.Today(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	mockRepo.AssertExpectations(t)
}
