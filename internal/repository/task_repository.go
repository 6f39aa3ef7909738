package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskplanner/internal/model"
)

// TaskFilter narrows task listings. Zero values mean "no filter".
type TaskFilter struct {
	Status   string
	Priority string
	Search   string
	Limit    int
	Offset   int
}

// TaskCounts holds the per-user aggregate counts for the stats summary.
type TaskCounts struct {
	Total        int64
	Completed    int64
	Pending      int64
	HighPriority int64
	Overdue      int64
}

// TaskRepository defines task persistence operations. All of them are scoped
// to the owning user.
type TaskRepository interface {
	Owned[model.Task]
	ListByOwner(ctx context.Context, ownerID uint, filter TaskFilter) ([]model.Task, int64, error)
	ListOverdue(ctx context.Context, ownerID uint, now time.Time) ([]model.Task, error)
	ListUpcoming(ctx context.Context, ownerID uint, from, to time.Time) ([]model.Task, error)
	CountByOwner(ctx context.Context, ownerID uint, now time.Time) (*TaskCounts, error)
}

type taskRepository struct {
	Owned[model.Task]
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{Owned: NewOwned[model.Task](db), db: db}
}

// ListByOwner returns a filtered, paginated page of tasks plus the total count
// matching the filter, newest first.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uint, filter TaskFilter) ([]model.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", ownerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var tasks []model.Task
	if err := query.Order("created_at DESC").Offset(filter.Offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// ListOverdue returns incomplete tasks whose due date has passed.
func (r *taskRepository) ListOverdue(ctx context.Context, ownerID uint, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date < ? AND is_completed = ?", ownerID, now, false).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListUpcoming returns incomplete tasks due within [from, to].
func (r *taskRepository) ListUpcoming(ctx context.Context, ownerID uint, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date >= ? AND due_date <= ? AND is_completed = ?", ownerID, from, to, false).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByOwner aggregates the counts backing the stats summary endpoint.
func (r *taskRepository) CountByOwner(ctx context.Context, ownerID uint, now time.Time) (*TaskCounts, error) {
	counts := &TaskCounts{}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", ownerID)
	}

	if err := base().Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_completed = ?", true).Count(&counts.Completed).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_completed = ?", false).Count(&counts.Pending).Error; err != nil {
		return nil, err
	}
	if err := base().Where("priority = ?", model.TaskPriorityHigh).Count(&counts.HighPriority).Error; err != nil {
		return nil, err
	}
	if err := base().Where("due_date < ? AND is_completed = ?", now, false).Count(&counts.Overdue).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
