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

// MockTaskRepository is a mock implementation of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteIfOwned(ctx context.Context, id, ownerID uint) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uint, filter repository.TaskFilter) ([]model.Task, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Task), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskRepository) ListOverdue(ctx context.Context, ownerID uint, now time.Time) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListUpcoming(ctx context.Context, ownerID uint, from, to time.Time) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) CountByOwner(ctx context.Context, ownerID uint, now time.Time) (*repository.TaskCounts, error) {
	args := m.Called(ctx, ownerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TaskCounts), args.Error(1)
}

func newTestTaskService(repo *MockTaskRepository) *taskService {
	svc := NewTaskService(repo, nil).(*taskService)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func strPtr(s string) *string                        { return &s }
func boolPtr(b bool) *bool                           { return &b }
func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }

func TestTaskService_UpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("completing sets derived state", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		task := &model.Task{ID: 1, UserID: 10, Title: "write report", Description: "for the sprint", Status: model.TaskStatusPending}
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(10)).Return(task, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		svc := newTestTaskService(mockRepo)
		updated, err := svc.Update(ctx, 1, 10, TaskUpdate{Status: statusPtr(model.TaskStatusCompleted)})

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusCompleted, updated.Status)
		assert.True(t, updated.IsCompleted)
		require.NotNil(t, updated.CompletedAt)
		assert.Equal(t, svc.now(), *updated.CompletedAt)
		// Untouched fields stay untouched.
		assert.Equal(t, "write report", updated.Title)
		assert.Equal(t, "for the sprint", updated.Description)
	})

	t.Run("leaving completed clears derived state", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		done := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		task := &model.Task{
			ID: 1, UserID: 10, Title: "write report",
			Status: model.TaskStatusCompleted, IsCompleted: true, CompletedAt: &done,
		}
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(10)).Return(task, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		svc := newTestTaskService(mockRepo)
		updated, err := svc.Update(ctx, 1, 10, TaskUpdate{Status: statusPtr(model.TaskStatusPending)})

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusPending, updated.Status)
		assert.False(t, updated.IsCompleted)
		assert.Nil(t, updated.CompletedAt)
		assert.Equal(t, "write report", updated.Title)
	})

	t.Run("is_completed drives status", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		task := &model.Task{ID: 1, UserID: 10, Status: model.TaskStatusInProgress}
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(10)).Return(task, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		svc := newTestTaskService(mockRepo)
		updated, err := svc.Update(ctx, 1, 10, TaskUpdate{IsCompleted: boolPtr(true)})

		require.NoError(t, err)
		assert.Equal(t, model.TaskStatusCompleted, updated.Status)
		assert.True(t, updated.IsCompleted)
		assert.NotNil(t, updated.CompletedAt)
	})

	t.Run("partial update leaves absent fields alone", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		task := &model.Task{
			ID: 1, UserID: 10, Title: "old title", Description: "old description",
			Priority: model.TaskPriorityHigh, Status: model.TaskStatusInProgress, DueDate: &due,
		}
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(10)).Return(task, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		svc := newTestTaskService(mockRepo)
		updated, err := svc.Update(ctx, 1, 10, TaskUpdate{Title: strPtr("new title")})

		require.NoError(t, err)
		assert.Equal(t, "new title", updated.Title)
		assert.Equal(t, "old description", updated.Description)
		assert.Equal(t, model.TaskPriorityHigh, updated.Priority)
		assert.Equal(t, model.TaskStatusInProgress, updated.Status)
		assert.Equal(t, &due, updated.DueDate)
	})
}

func TestTaskService_ToggleCompletionIsIdempotentUnderDoubleToggle(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	task := &model.Task{ID: 1, UserID: 10, Status: model.TaskStatusPending}
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(10)).Return(task, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	svc := newTestTaskService(mockRepo)
	ctx := context.Background()

	toggled, err := svc.ToggleCompletion(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
	assert.Equal(t, model.TaskStatusCompleted, toggled.Status)
	assert.NotNil(t, toggled.CompletedAt)

	toggledBack, err := svc.ToggleCompletion(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, toggledBack.IsCompleted)
	assert.Equal(t, model.TaskStatusPending, toggledBack.Status)
	assert.Nil(t, toggledBack.CompletedAt)
}

func TestTaskService_CrossOwnerAccessLooksLikeAbsence(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	// The repository's compound (id, owner) filter misses for another user's
	// task, so the service sees a plain record-not-found.
	mockRepo.On("FindByIDAndOwner", mock.Anything, uint(1), uint(99)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("DeleteIfOwned", mock.Anything, uint(1), uint(99)).Return(false, nil)

	svc := newTestTaskService(mockRepo)
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	_, err = svc.Update(ctx, 1, 99, TaskUpdate{Title: strPtr("hijack")})
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)

	err = svc.Delete(ctx, 1, 99)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_CreateAppliesDefaults(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Priority == model.TaskPriorityMedium &&
			task.Status == model.TaskStatusPending &&
			task.UserID == 10
	})).Return(nil)

	svc := newTestTaskService(mockRepo)
	task, err := svc.Create(context.Background(), 10, TaskCreate{Title: "untitled chores"})

	require.NoError(t, err)
	assert.Equal(t, model.TaskPriorityMedium, task.Priority)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_Stats(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("CountByOwner", mock.Anything, uint(10), mock.Anything).Return(&repository.TaskCounts{
		Total:        8,
		Completed:    2,
		Pending:      6,
		HighPriority: 3,
		Overdue:      1,
	}, nil)

	svc := newTestTaskService(mockRepo)
	stats, err := svc.Stats(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, int64(8), stats.TotalTasks)
	assert.Equal(t, int64(2), stats.CompletedTasks)
	assert.Equal(t, int64(1), stats.OverdueTasks)
	assert.Equal(t, "25", stats.CompletionRate.String())
}

func TestTaskService_UpcomingDefaultsWindow(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	svc := newTestTaskService(mockRepo)
	from := svc.now().UTC()
	to := from.AddDate(0, 0, 7)
	mockRepo.On("ListUpcoming", mock.Anything, uint(10), from, to).Return([]model.Task{}, nil)

	_, err := svc.Upcoming(context.Background(), 10, 0)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
