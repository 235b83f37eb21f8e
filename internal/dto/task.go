package dto

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/services"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	UserID      uint64              `json:"userId"`
	ProjectID   uint64              `json:"projectId"`
	DueDate     *time.Time          `json:"dueDate"`
	CompletedAt *time.Time          `json:"completedAt"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Project     *ProjectSummaryDTO  `json:"project,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TaskSuggestionDTO is an AI-proposed task
type TaskSuggestionDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	TitleTaken  bool       `json:"titleTaken"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		UserID:      task.UserID,
		ProjectID:   task.ProjectID,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Project:     ToProjectSummaryDTO(task.Project),
	}
}

// ToTaskDTOs converts a list of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskListResponse converts a page of tasks
func ToTaskListResponse(tasks []models.Task, pagination utils.PaginationResponse) TaskListResponse {
	return TaskListResponse{
		Tasks:      ToTaskDTOs(tasks),
		Pagination: pagination,
	}
}

// ToTaskSuggestionDTOs converts AI suggestions
func ToTaskSuggestionDTOs(suggestions []services.TaskSuggestion) []TaskSuggestionDTO {
	dtos := make([]TaskSuggestionDTO, len(suggestions))
	for i, s := range suggestions {
		dtos[i] = TaskSuggestionDTO{
			Title:       s.Title,
			Description: s.Description,
			DueDate:     s.DueDate,
			TitleTaken:  s.TitleTaken,
		}
	}
	return dtos
}
