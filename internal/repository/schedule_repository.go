package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskplanner/internal/model"
)

// ScheduleFilter narrows schedule listings. Zero values mean "no filter".
type ScheduleFilter struct {
	Status       string
	ScheduleType string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// ScheduleRepository defines schedule persistence operations, all scoped to
// the owning user.
type ScheduleRepository interface {
	Owned[model.Schedule]
	ListByOwner(ctx context.Context, ownerID uint, filter ScheduleFilter) ([]model.Schedule, error)
	ListInRange(ctx context.Context, ownerID uint, from, to time.Time, statuses []model.ScheduleStatus) ([]model.Schedule, error)
}

type scheduleRepository struct {
	Owned[model.Schedule]
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{Owned: NewOwned[model.Schedule](db), db: db}
}

// ListByOwner returns the user's schedules matching the filter, ordered by
// start time.
func (r *scheduleRepository) ListByOwner(ctx context.Context, ownerID uint, filter ScheduleFilter) ([]model.Schedule, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ScheduleType != "" {
		query = query.Where("schedule_type = ?", filter.ScheduleType)
	}
	if filter.StartDate != nil {
		query = query.Where("start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("start_time <= ?", *filter.EndDate)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var schedules []model.Schedule
	if err := query.Order("start_time ASC").Offset(filter.Offset).Limit(limit).Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// ListInRange returns schedules starting within [from, to], optionally
// restricted to the given statuses.
func (r *scheduleRepository) ListInRange(ctx context.Context, ownerID uint, from, to time.Time, statuses []model.ScheduleStatus) ([]model.Schedule, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND start_time >= ? AND start_time <= ?", ownerID, from, to)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var schedules []model.Schedule
	if err := query.Order("start_time ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}
