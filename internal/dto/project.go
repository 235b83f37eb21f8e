package dto

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Color       *string              `json:"color"`
	Status      models.ProjectStatus `json:"status"`
	UserID      uint64               `json:"userId"`
	TaskCount   int                  `json:"taskCount"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	Tasks       []TaskDTO            `json:"tasks,omitempty"`
}

// ProjectSummaryDTO is the project reference embedded in task responses
type ProjectSummaryDTO struct {
	ID     uint64               `json:"id"`
	Name   string               `json:"name"`
	Color  *string              `json:"color"`
	Status models.ProjectStatus `json:"status"`
}

// ToProjectDTO converts a Project model; tasks are included when requested
// and loaded.
func ToProjectDTO(project models.Project, includeTasks bool) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Color:       project.Color,
		Status:      project.Status,
		UserID:      project.UserID,
		TaskCount:   len(project.Tasks),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	if includeTasks {
		dto.Tasks = make([]TaskDTO, len(project.Tasks))
		for i, task := range project.Tasks {
			dto.Tasks[i] = ToTaskDTO(task)
		}
	}

	return dto
}

// ToProjectDTOs converts a list of projects without their tasks
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project, false)
	}
	return dtos
}

// ToProjectSummaryDTO returns nil when the project was not loaded
func ToProjectSummaryDTO(project models.Project) *ProjectSummaryDTO {
	if project.ID == 0 {
		return nil
	}
	return &ProjectSummaryDTO{
		ID:     project.ID,
		Name:   project.Name,
		Color:  project.Color,
		Status: project.Status,
	}
}
