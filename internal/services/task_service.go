package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAIRequestFailed        = errors.New("AI request failed")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	validator   *NameValidator
	generator   TaskGenerator
	now         func() time.Time
}

// NewTaskService creates a new TaskService. generator may be nil when AI
// suggestions are not configured.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, validator *NameValidator, generator TaskGenerator) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		validator:   validator,
		generator:   generator,
		now:         time.Now,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID     uint64
	ProjectID  *uint64
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	ProjectID   uint64
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput replaces the editable fields of a task. Empty status or
// priority keep the current value; nil description or due date clear it.
type UpdateTaskInput struct {
	UserID      uint64
	ID          uint64
	ProjectID   uint64
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// TaskSuggestion is an AI-proposed task that has not been stored.
type TaskSuggestion struct {
	Title       string
	Description string
	DueDate     *time.Time
	TitleTaken  bool
}

// ListTasks returns the user's tasks matching the filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, 0, NewValidationError("status", "Invalid task status")
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		UserID:     input.UserID,
		ProjectID:  input.ProjectID,
		Status:     input.Status,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns one of the user's tasks with its project
func (s *TaskService) GetTask(userID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForUser(taskID, userID, "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates and stores a new task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	if err := validateTaskFields(title, input.ProjectID, status, priority); err != nil {
		return nil, err
	}

	project, err := s.findOwnedProject(input.UserID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	exists, err := s.validator.TaskTitleExists(input.UserID, project.ID, title, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameConflict
	}

	task := &models.Task{
		Title:       title,
		Description: normalizeOptional(input.Description),
		Priority:    priority,
		UserID:      input.UserID,
		ProjectID:   project.ID,
		DueDate:     input.DueDate,
	}
	task.ApplyStatus(status, s.now())

	if err := s.taskRepo.Create(task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameConflict
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task.Project = *project
	return task, nil
}

// UpdateTask validates and applies changes to one of the user's tasks
func (s *TaskService) UpdateTask(input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDForUser(input.ID, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	title := strings.TrimSpace(input.Title)
	status := input.Status
	if status == "" {
		status = task.Status
	}
	priority := input.Priority
	if priority == "" {
		priority = task.Priority
	}

	if err := validateTaskFields(title, input.ProjectID, status, priority); err != nil {
		return nil, err
	}

	project, err := s.findOwnedProject(input.UserID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if title != task.Title || project.ID != task.ProjectID {
		exists, err := s.validator.TaskTitleExists(input.UserID, project.ID, title, &task.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrNameConflict
		}
	}

	task.Title = title
	task.Description = normalizeOptional(input.Description)
	task.Priority = priority
	task.ProjectID = project.ID
	task.DueDate = input.DueDate
	task.ApplyStatus(status, s.now())

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameConflict
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	task.Project = *project
	return task, nil
}

// DeleteTask removes one of the user's tasks
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	if _, err := s.taskRepo.FindByIDForUser(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// TitleExists reports whether the user already has a task with this title in the project
func (s *TaskService) TitleExists(userID, projectID uint64, title string, excludeID *uint64) (bool, error) {
	return s.validator.TaskTitleExists(userID, projectID, title, excludeID)
}

// SuggestTasks asks the AI generator for tasks extracted from text. Nothing is
// stored; each suggestion reports whether its title is already taken in the project.
func (s *TaskService) SuggestTasks(ctx context.Context, userID, projectID uint64, text string) ([]TaskSuggestion, error) {
	if s.generator == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text = strings.TrimSpace(text)
	verr := &ValidationError{}
	if text == "" {
		verr.Add("text", "Text is required")
	}
	if projectID == 0 {
		verr.Add("projectId", "Project is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	project, err := s.findOwnedProject(userID, projectID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIRequestFailed, err)
	}

	suggestions := make([]TaskSuggestion, 0, len(generated))
	seen := make(map[string]bool)
	for _, g := range generated {
		title := strings.TrimSpace(g.Title)
		if title == "" || utf8.RuneCountInString(title) > constants.MaxNameLength || seen[title] {
			continue
		}
		seen[title] = true

		taken, err := s.validator.TaskTitleExists(userID, project.ID, title, nil)
		if err != nil {
			return nil, err
		}

		suggestions = append(suggestions, TaskSuggestion{
			Title:       title,
			Description: strings.TrimSpace(g.Description),
			DueDate:     g.DueDate,
			TitleTaken:  taken,
		})
		if len(suggestions) == constants.MaxAIGeneratedTasks {
			break
		}
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	return suggestions, nil
}

// findOwnedProject resolves a project id for a task write; a missing or
// foreign project is a validation failure on projectId.
func (s *TaskService) findOwnedProject(userID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDForUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("projectId", "Project not found")
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func validateTaskFields(title string, projectID uint64, status models.TaskStatus, priority models.TaskPriority) error {
	verr := &ValidationError{}
	switch {
	case title == "":
		verr.Add("title", "Title is required")
	case utf8.RuneCountInString(title) > constants.MaxNameLength:
		verr.Add("title", fmt.Sprintf("Title must be at most %d characters", constants.MaxNameLength))
	}
	if projectID == 0 {
		verr.Add("projectId", "Project is required")
	}
	if !status.IsValid() {
		verr.Add("status", "Invalid task status")
	}
	if !priority.IsValid() {
		verr.Add("priority", "Invalid task priority")
	}
	return verr.OrNil()
}
