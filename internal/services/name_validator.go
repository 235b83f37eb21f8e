package services

import (
	"fmt"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/repository"
)

// NameValidator answers whether a project name or task title is already
// taken in its scope. Names are trimmed and compared exactly. It is a fast
// path for friendly errors; the unique indexes remain authoritative.
type NameValidator struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewNameValidator creates a new NameValidator
func NewNameValidator(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *NameValidator {
	return &NameValidator{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// ProjectNameExists reports whether userID already owns a project called name,
// ignoring excludeID.
func (v *NameValidator) ProjectNameExists(userID uint64, name string, excludeID *uint64) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, NewValidationError("name", "Project name is required")
	}

	exists, err := v.projectRepo.NameExists(userID, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check project name: %w", err)
	}
	return exists, nil
}

// TaskTitleExists reports whether userID already has a task called title in
// projectID, ignoring excludeID.
func (v *NameValidator) TaskTitleExists(userID, projectID uint64, title string, excludeID *uint64) (bool, error) {
	title = strings.TrimSpace(title)
	verr := &ValidationError{}
	if title == "" {
		verr.Add("title", "Title is required")
	}
	if projectID == 0 {
		verr.Add("projectId", "Project is required")
	}
	if err := verr.OrNil(); err != nil {
		return false, err
	}

	exists, err := v.taskRepo.TitleExists(userID, projectID, title, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check task title: %w", err)
	}
	return exists, nil
}
