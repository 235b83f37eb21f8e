// Package reporting derives per-task metrics and aggregate analytics from a
// task set and provides the filtering and sorting used by the report views.
// Every function is pure: callers pass the clock in and get new slices back.
package reporting

import (
	"fmt"
	"math"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// Day is the unit used for due-date and completion-time arithmetic.
const Day = 24 * time.Hour

// Row is the subset of a task and its project that reporting reads.
type Row struct {
	ID          uint64
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	UserID      uint64
	ProjectID   uint64
	ProjectName string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RowFromTask flattens a task with its preloaded project.
func RowFromTask(task models.Task) Row {
	row := Row{
		ID:          task.ID,
		Title:       task.Title,
		Status:      task.Status,
		Priority:    task.Priority,
		UserID:      task.UserID,
		ProjectID:   task.ProjectID,
		ProjectName: task.Project.Name,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Description != nil {
		row.Description = *task.Description
	}
	return row
}

// Metrics are the values derived for one task at a given instant.
// Nil pointers mean "not applicable"; CompletedOnTime is nil unless the task
// has both a completion stamp and a due date.
type Metrics struct {
	TimeToComplete  *time.Duration
	DaysUntilDue    *int
	IsOverdue       bool
	CompletedOnTime *bool
}

// Entry pairs a row with its derived metrics.
type Entry struct {
	Row
	Metrics
}

// Derive computes the metrics of every row relative to now.
func Derive(rows []Row, now time.Time) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{Row: row, Metrics: Compute(row, now)})
	}
	return entries
}

// Compute derives the metrics of a single row.
func Compute(row Row, now time.Time) Metrics {
	var m Metrics

	if row.CompletedAt != nil {
		d := row.CompletedAt.Sub(row.CreatedAt)
		m.TimeToComplete = &d
	}

	if row.DueDate != nil && row.CompletedAt == nil {
		days := int(math.Ceil(float64(row.DueDate.Sub(now)) / float64(Day)))
		m.DaysUntilDue = &days
		m.IsOverdue = days < 0
	}

	if row.CompletedAt != nil && row.DueDate != nil {
		onTime := !row.CompletedAt.After(*row.DueDate)
		m.CompletedOnTime = &onTime
	}

	return m
}

// TimeToCompleteText renders the completion time as "3d 4h" or "5h", "-" when unknown.
func (m Metrics) TimeToCompleteText() string {
	if m.TimeToComplete == nil {
		return "-"
	}
	d := *m.TimeToComplete
	days := int64(math.Floor(float64(d) / float64(Day)))
	hours := int64((d % Day) / time.Hour)
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh", hours)
}

// DaysUntilDueText renders the due-date distance, "-" when there is none.
func (m Metrics) DaysUntilDueText() string {
	if m.DaysUntilDue == nil {
		return "-"
	}
	days := *m.DaysUntilDue
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "Due today"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}
