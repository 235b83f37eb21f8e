package dto

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/reporting"
)

// ReportTaskDTO is a task row of the report with its derived metrics.
// timeToComplete is in milliseconds.
type ReportTaskDTO struct {
	ID                 uint64              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Status             models.TaskStatus   `json:"status"`
	Priority           models.TaskPriority `json:"priority"`
	UserID             uint64              `json:"userId"`
	ProjectID          uint64              `json:"projectId"`
	ProjectName        string              `json:"projectName"`
	DueDate            *time.Time          `json:"dueDate"`
	CompletedAt        *time.Time          `json:"completedAt"`
	CreatedAt          time.Time           `json:"createdAt"`
	TimeToComplete     *int64              `json:"timeToComplete"`
	TimeToCompleteText string              `json:"timeToCompleteText"`
	DaysUntilDue       *int                `json:"daysUntilDue"`
	DaysUntilDueText   string              `json:"daysUntilDueText"`
	IsOverdue          bool                `json:"isOverdue"`
	CompletedOnTime    *bool               `json:"completedOnTime"`
}

// ReportResponse is the body of the report endpoints
type ReportResponse struct {
	Tasks             []ReportTaskDTO     `json:"tasks"`
	Analytics         reporting.Analytics `json:"analytics"`
	FilteredAnalytics reporting.Analytics `json:"filteredAnalytics"`
}

// ToReportTaskDTO converts a report entry
func ToReportTaskDTO(e reporting.Entry) ReportTaskDTO {
	dto := ReportTaskDTO{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Status:             e.Status,
		Priority:           e.Priority,
		UserID:             e.UserID,
		ProjectID:          e.ProjectID,
		ProjectName:        e.ProjectName,
		DueDate:            e.DueDate,
		CompletedAt:        e.CompletedAt,
		CreatedAt:          e.CreatedAt,
		TimeToCompleteText: e.TimeToCompleteText(),
		DaysUntilDue:       e.DaysUntilDue,
		DaysUntilDueText:   e.DaysUntilDueText(),
		IsOverdue:          e.IsOverdue,
		CompletedOnTime:    e.CompletedOnTime,
	}
	if e.TimeToComplete != nil {
		ms := e.TimeToComplete.Milliseconds()
		dto.TimeToComplete = &ms
	}
	return dto
}

// ToReportResponse converts a report
func ToReportResponse(r reporting.Report) ReportResponse {
	tasks := make([]ReportTaskDTO, len(r.Entries))
	for i, e := range r.Entries {
		tasks[i] = ToReportTaskDTO(e)
	}
	return ReportResponse{
		Tasks:             tasks,
		Analytics:         r.Analytics,
		FilteredAnalytics: r.FilteredAnalytics,
	}
}
