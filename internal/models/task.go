package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

func (p TaskPriority) IsValid() bool {
	return p.Rank() > 0
}

// Rank orders priorities LOW < MEDIUM < HIGH < URGENT; unknown values rank 0.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityLow:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityHigh:
		return 3
	case TaskPriorityUrgent:
		return 4
	default:
		return 0
	}
}

// Task titles are unique per (project, owner); idx_tasks_project_user_title enforces it in storage.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null;uniqueIndex:idx_tasks_project_user_title,priority:3" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	UserID      uint64       `gorm:"not null;uniqueIndex:idx_tasks_project_user_title,priority:2" json:"userId"`
	ProjectID   uint64       `gorm:"not null;uniqueIndex:idx_tasks_project_user_title,priority:1" json:"projectId"`
	DueDate     *time.Time   `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	// Relations
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// ApplyStatus sets the task status and keeps CompletedAt in step with it.
// Entering COMPLETED stamps now, staying COMPLETED keeps the original stamp,
// and any other status clears it.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	previous := t.Status
	t.Status = status

	if status != TaskStatusCompleted {
		t.CompletedAt = nil
		return
	}
	if previous != TaskStatusCompleted || t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
}

// IsCompleted reports whether the task is in the COMPLETED state.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}
