package dto

import (
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// StatsResponse holds the public counters
type StatsResponse struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalProjects int64 `json:"totalProjects"`
	TotalTasks    int64 `json:"totalTasks"`
}

// AdminUserDTO is a user with everything they own
type AdminUserDTO struct {
	UserDTO
	Projects []ProjectDTO `json:"projects"`
	Tasks    []TaskDTO    `json:"tasks"`
}

// AdminStatsResponse is the body of the admin overview
type AdminStatsResponse struct {
	Users []AdminUserDTO `json:"users"`
}

// ToStatsResponse converts the public counters
func ToStatsResponse(stats services.PublicStats) StatsResponse {
	return StatsResponse{
		TotalUsers:    stats.TotalUsers,
		TotalProjects: stats.TotalProjects,
		TotalTasks:    stats.TotalTasks,
	}
}

// ToAdminStatsResponse converts users loaded with projects, project tasks and tasks
func ToAdminStatsResponse(users []models.User) AdminStatsResponse {
	dtos := make([]AdminUserDTO, len(users))
	for i, user := range users {
		projects := make([]ProjectDTO, len(user.Projects))
		for j, project := range user.Projects {
			projects[j] = ToProjectDTO(project, true)
		}
		dtos[i] = AdminUserDTO{
			UserDTO:  ToUserDTO(user),
			Projects: projects,
			Tasks:    ToTaskDTOs(user.Tasks),
		}
	}
	return AdminStatsResponse{Users: dtos}
}
