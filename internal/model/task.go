package model

import "time"

// TaskPriority represents the priority of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Task is a user-owned to-do item. IsCompleted and CompletedAt are derived from
// Status and kept in sync by the task service.
type Task struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	Title        string       `json:"title" gorm:"size:200;not null"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Priority     TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'medium';index"`
	Status       TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate      *time.Time   `json:"due_date,omitempty"`
	ReminderTime *time.Time   `json:"reminder_time,omitempty"`
	IsCompleted  bool         `json:"is_completed" gorm:"default:false;index"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	UserID       uint         `json:"user_id" gorm:"not null;index"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
