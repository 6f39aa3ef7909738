package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskplanner/internal/cache"
	apperrors "taskplanner/internal/errors"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

const taskStatsCacheTTL = time.Minute

// TaskCreate carries the fields accepted when creating a task.
type TaskCreate struct {
	Title        string
	Description  string
	Priority     model.TaskPriority
	DueDate      *time.Time
	ReminderTime *time.Time
}

// TaskUpdate carries a partial update. A nil field means "leave unchanged",
// never "reset to default".
type TaskUpdate struct {
	Title        *string
	Description  *string
	Priority     *model.TaskPriority
	Status       *model.TaskStatus
	DueDate      *time.Time
	ReminderTime *time.Time
	IsCompleted  *bool
}

// TaskStats is the per-user summary returned by the stats endpoint.
type TaskStats struct {
	TotalTasks        int64           `json:"total_tasks"`
	CompletedTasks    int64           `json:"completed_tasks"`
	PendingTasks      int64           `json:"pending_tasks"`
	HighPriorityTasks int64           `json:"high_priority_tasks"`
	OverdueTasks      int64           `json:"overdue_tasks"`
	CompletionRate    decimal.Decimal `json:"completion_rate"`
}

// TaskService exposes owner-scoped task operations.
type TaskService interface {
	Create(ctx context.Context, ownerID uint, in TaskCreate) (*model.Task, error)
	Get(ctx context.Context, id, ownerID uint) (*model.Task, error)
	List(ctx context.Context, ownerID uint, filter repository.TaskFilter) ([]model.Task, int64, error)
	Update(ctx context.Context, id, ownerID uint, in TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id, ownerID uint) error
	ToggleCompletion(ctx context.Context, id, ownerID uint) (*model.Task, error)
	Overdue(ctx context.Context, ownerID uint) ([]model.Task, error)
	Upcoming(ctx context.Context, ownerID uint, days int) ([]model.Task, error)
	Stats(ctx context.Context, ownerID uint) (*TaskStats, error)
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
	now   func() time.Time
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache, now: time.Now}
}

func (s *taskService) statsCacheKey(ownerID uint) string {
	return fmt.Sprintf("task_stats:%d", ownerID)
}

func (s *taskService) invalidateStats(ctx context.Context, ownerID uint) {
	_ = s.cache.Delete(ctx, s.statsCacheKey(ownerID))
}

func (s *taskService) Create(ctx context.Context, ownerID uint, in TaskCreate) (*model.Task, error) {
	priority := in.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}

	task := &model.Task{
		Title:        in.Title,
		Description:  in.Description,
		Priority:     priority,
		Status:       model.TaskStatusPending,
		DueDate:      in.DueDate,
		ReminderTime: in.ReminderTime,
		UserID:       ownerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.invalidateStats(ctx, ownerID)
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	task, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID uint, filter repository.TaskFilter) ([]model.Task, int64, error) {
	return s.repo.ListByOwner(ctx, ownerID, filter)
}

// Update applies only the fields present in the payload. Status and
// IsCompleted drive each other: moving to completed sets the flag and stamps
// CompletedAt, leaving completed clears both.
func (s *taskService) Update(ctx context.Context, id, ownerID uint, in TaskUpdate) (*model.Task, error) {
	task, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.ReminderTime != nil {
		task.ReminderTime = in.ReminderTime
	}

	if in.Status != nil {
		prev := task.Status
		switch {
		case *in.Status == model.TaskStatusCompleted:
			task.IsCompleted = true
			now := s.now().UTC()
			task.CompletedAt = &now
		case prev == model.TaskStatusCompleted && *in.Status != model.TaskStatusCompleted:
			task.IsCompleted = false
			task.CompletedAt = nil
		}
		task.Status = *in.Status
	}

	if in.IsCompleted != nil {
		if *in.IsCompleted {
			task.IsCompleted = true
			task.Status = model.TaskStatusCompleted
			now := s.now().UTC()
			task.CompletedAt = &now
		} else {
			task.IsCompleted = false
			if task.Status == model.TaskStatusCompleted {
				task.Status = model.TaskStatusPending
			}
			task.CompletedAt = nil
		}
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	s.invalidateStats(ctx, ownerID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id, ownerID uint) error {
	deleted, err := s.repo.DeleteIfOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return apperrors.ErrTaskNotFound
	}
	s.invalidateStats(ctx, ownerID)
	return nil
}

// ToggleCompletion flips the completion flag and keeps status and CompletedAt
// in sync. Toggling twice returns the task to a pending state.
func (s *taskService) ToggleCompletion(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	task, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted {
		task.IsCompleted = false
		task.Status = model.TaskStatusPending
		task.CompletedAt = nil
	} else {
		task.IsCompleted = true
		task.Status = model.TaskStatusCompleted
		now := s.now().UTC()
		task.CompletedAt = &now
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	s.invalidateStats(ctx, ownerID)
	return task, nil
}

func (s *taskService) Overdue(ctx context.Context, ownerID uint) ([]model.Task, error) {
	return s.repo.ListOverdue(ctx, ownerID, s.now().UTC())
}

func (s *taskService) Upcoming(ctx context.Context, ownerID uint, days int) ([]model.Task, error) {
	if days <= 0 {
		days = 7
	}
	from := s.now().UTC()
	to := from.AddDate(0, 0, days)
	return s.repo.ListUpcoming(ctx, ownerID, from, to)
}

// Stats returns the per-user counts and completion rate. Results are cached
// briefly and invalidated on every task write.
func (s *taskService) Stats(ctx context.Context, ownerID uint) (*TaskStats, error) {
	key := s.statsCacheKey(ownerID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached TaskStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.repo.CountByOwner(ctx, ownerID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	rate := decimal.Zero
	if counts.Total > 0 {
		rate = decimal.NewFromInt(counts.Completed * 100).
			Div(decimal.NewFromInt(counts.Total)).
			Round(2)
	}

	stats := &TaskStats{
		TotalTasks:        counts.Total,
		CompletedTasks:    counts.Completed,
		PendingTasks:      counts.Pending,
		HighPriorityTasks: counts.HighPriority,
		OverdueTasks:      counts.Overdue,
		CompletionRate:    rate,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, key, payload, taskStatsCacheTTL)
	}
	return stats, nil
}
