package model

import "time"

// ScheduleStatus represents the status of a schedule entry.
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusOngoing   ScheduleStatus = "ongoing"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Schedule is a user-owned calendar entry.
type Schedule struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Title            string         `json:"title" gorm:"size:200;not null"`
	Description      string         `json:"description,omitempty" gorm:"type:text"`
	Location         string         `json:"location,omitempty" gorm:"size:255"`
	StartTime        time.Time      `json:"start_time" gorm:"not null;index"`
	EndTime          *time.Time     `json:"end_time,omitempty"`
	ReminderTime     *time.Time     `json:"reminder_time,omitempty"`
	Status           ScheduleStatus `json:"status" gorm:"type:varchar(20);not null;default:'scheduled';index"`
	ScheduleType     string         `json:"schedule_type" gorm:"size:50;not null;default:'meeting';index"`
	IsRecurring      bool           `json:"is_recurring" gorm:"default:false"`
	RecurringPattern string         `json:"recurring_pattern,omitempty" gorm:"size:50"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
