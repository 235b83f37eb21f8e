package services

import (
	"fmt"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// StatsService serves the public counters and the admin overview.
type StatsService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// PublicStats holds the site-wide counters.
type PublicStats struct {
	TotalUsers    int64
	TotalProjects int64
	TotalTasks    int64
}

// NewStatsService creates a new StatsService
func NewStatsService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// Counts returns the number of users, projects and tasks
func (s *StatsService) Counts() (PublicStats, error) {
	var stats PublicStats
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return PublicStats{}, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalProjects, err = s.projectRepo.Count(); err != nil {
		return PublicStats{}, fmt.Errorf("failed to count projects: %w", err)
	}
	if stats.TotalTasks, err = s.taskRepo.Count(); err != nil {
		return PublicStats{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	return stats, nil
}

// Overview returns every user with their projects, the projects' tasks and
// the user's tasks
func (s *StatsService) Overview() ([]models.User, error) {
	users, err := s.userRepo.ListWithProjectsAndTasks()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}
