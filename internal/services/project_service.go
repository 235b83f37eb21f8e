package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	validator   *NameValidator
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, validator *NameValidator) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		validator:   validator,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	UserID      uint64
	Name        string
	Description *string
	Color       *string
	Status      models.ProjectStatus
}

// UpdateProjectInput represents input for updating a project.
// Nil optional fields keep their current value; empty strings clear them.
type UpdateProjectInput struct {
	UserID      uint64
	ID          uint64
	Name        string
	Description *string
	Color       *string
	Status      *models.ProjectStatus
}

// ListProjects returns the user's projects with their tasks
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one of the user's projects with its tasks
func (s *ProjectService) GetProject(userID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDForUser(projectID, userID, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates and stores a new project
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	status := input.Status
	if status == "" {
		status = models.ProjectStatusActive
	}

	verr := &ValidationError{}
	validateProjectName(verr, name)
	if !status.IsValid() {
		verr.Add("status", "Invalid project status")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	exists, err := s.validator.ProjectNameExists(input.UserID, name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameConflict
	}

	project := &models.Project{
		Name:        name,
		Description: normalizeOptional(input.Description),
		Color:       normalizeOptional(input.Color),
		Status:      status,
		UserID:      input.UserID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameConflict
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// UpdateProject validates and applies changes to one of the user's projects
func (s *ProjectService) UpdateProject(input UpdateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)

	verr := &ValidationError{}
	if input.ID == 0 {
		verr.Add("id", "Project id is required")
	}
	validateProjectName(verr, name)
	if input.Status != nil && !input.Status.IsValid() {
		verr.Add("status", "Invalid project status")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByIDForUser(input.ID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if name != project.Name {
		exists, err := s.validator.ProjectNameExists(input.UserID, name, &project.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrNameConflict
		}
	}

	project.Name = name
	if input.Description != nil {
		project.Description = normalizeOptional(input.Description)
	}
	if input.Color != nil {
		project.Color = normalizeOptional(input.Color)
	}
	if input.Status != nil {
		project.Status = *input.Status
	}

	if err := s.projectRepo.Update(project); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameConflict
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes one of the user's projects and all of its tasks
func (s *ProjectService) DeleteProject(userID, projectID uint64) error {
	if projectID == 0 {
		return NewValidationError("id", "Project id is required")
	}

	if _, err := s.projectRepo.FindByIDForUser(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// NameExists reports whether the user already owns a project with this name
func (s *ProjectService) NameExists(userID uint64, name string, excludeID *uint64) (bool, error) {
	return s.validator.ProjectNameExists(userID, name, excludeID)
}

func validateProjectName(verr *ValidationError, name string) {
	switch {
	case name == "":
		verr.Add("name", "Project name is required")
	case utf8.RuneCountInString(name) > constants.MaxNameLength:
		verr.Add("name", fmt.Sprintf("Project name must be at most %d characters", constants.MaxNameLength))
	}
}

// normalizeOptional trims v and maps blank strings to nil.
func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
