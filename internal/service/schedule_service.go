package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "taskplanner/internal/errors"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

// ScheduleCreate carries the fields accepted when creating a schedule.
type ScheduleCreate struct {
	Title            string
	Description      string
	Location         string
	StartTime        time.Time
	EndTime          *time.Time
	ReminderTime     *time.Time
	Status           model.ScheduleStatus
	ScheduleType     string
	IsRecurring      bool
	RecurringPattern string
}

// ScheduleUpdate carries a partial update; nil fields are left unchanged.
type ScheduleUpdate struct {
	Title            *string
	Description      *string
	Location         *string
	StartTime        *time.Time
	EndTime          *time.Time
	ReminderTime     *time.Time
	Status           *model.ScheduleStatus
	ScheduleType     *string
	IsRecurring      *bool
	RecurringPattern *string
}

// ScheduleService exposes owner-scoped schedule operations.
type ScheduleService interface {
	Create(ctx context.Context, ownerID uint, in ScheduleCreate) (*model.Schedule, error)
	Get(ctx context.Context, id, ownerID uint) (*model.Schedule, error)
	List(ctx context.Context, ownerID uint, filter repository.ScheduleFilter) ([]model.Schedule, error)
	Update(ctx context.Context, id, ownerID uint, in ScheduleUpdate) (*model.Schedule, error)
	Delete(ctx context.Context, id, ownerID uint) error
	Today(ctx context.Context, ownerID uint) ([]model.Schedule, error)
	Upcoming(ctx context.Context, ownerID uint, days int) ([]model.Schedule, error)
}

type scheduleService struct {
	repo repository.ScheduleRepository
	now  func() time.Time
}

// NewScheduleService builds a ScheduleService.
func NewScheduleService(repo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{repo: repo, now: time.Now}
}

func (s *scheduleService) Create(ctx context.Context, ownerID uint, in ScheduleCreate) (*model.Schedule, error) {
	status := in.Status
	if status == "" {
		status = model.ScheduleStatusScheduled
	}
	scheduleType := in.ScheduleType
	if scheduleType == "" {
		scheduleType = "meeting"
	}

	schedule := &model.Schedule{
		Title:            in.Title,
		Description:      in.Description,
		Location:         in.Location,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		ReminderTime:     in.ReminderTime,
		Status:           status,
		ScheduleType:     scheduleType,
		IsRecurring:      in.IsRecurring,
		RecurringPattern: in.RecurringPattern,
		UserID:           ownerID,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return schedule, nil
}

func (s *scheduleService) Get(ctx context.Context, id, ownerID uint) (*model.Schedule, error) {
	schedule, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return schedule, nil
}

func (s *scheduleService) List(ctx context.Context, ownerID uint, filter repository.ScheduleFilter) ([]model.Schedule, error) {
	return s.repo.ListByOwner(ctx, ownerID, filter)
}

// Update applies only the fields present in the payload.
func (s *scheduleService) Update(ctx context.Context, id, ownerID uint, in ScheduleUpdate) (*model.Schedule, error) {
	schedule, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		schedule.Title = *in.Title
	}
	if in.Description != nil {
		schedule.Description = *in.Description
	}
	if in.Location != nil {
		schedule.Location = *in.Location
	}
	if in.StartTime != nil {
		schedule.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		schedule.EndTime = in.EndTime
	}
	if in.ReminderTime != nil {
		schedule.ReminderTime = in.ReminderTime
	}
	if in.Status != nil {
		schedule.Status = *in.Status
	}
	if in.ScheduleType != nil {
		schedule.ScheduleType = *in.ScheduleType
	}
	if in.IsRecurring != nil {
		schedule.IsRecurring = *in.IsRecurring
	}
	if in.RecurringPattern != nil {
		schedule.RecurringPattern = *in.RecurringPattern
	}

	if err := s.repo.Save(ctx, schedule); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}
	return schedule, nil
}

func (s *scheduleService) Delete(ctx context.Context, id, ownerID uint) error {
	deleted, err := s.repo.DeleteIfOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if !deleted {
		return apperrors.ErrScheduleNotFound
	}
	return nil
}

// Today returns the user's schedules starting today, earliest first.
func (s *scheduleService) Today(ctx context.Context, ownerID uint) ([]model.Schedule, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.repo.ListInRange(ctx, ownerID, start, end, nil)
}

// Upcoming returns schedules starting in the next N days that are still
// scheduled or ongoing.
func (s *scheduleService) Upcoming(ctx context.Context, ownerID uint, days int) ([]model.Schedule, error) {
	if days <= 0 {
		days = 7
	}
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, days+1).Add(-time.Nanosecond)
	return s.repo.ListInRange(ctx, ownerID, start, end, []model.ScheduleStatus{
		model.ScheduleStatusScheduled,
		model.ScheduleStatusOngoing,
	})
}
