package repository

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

// TaskRepository defines the interface for task data access.
// Lookups that take a userID only ever return rows owned by that user.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForUser finds a task owned by userID with optional preloading
	FindByIDForUser(id, userID uint64, preload ...string) (*models.Task, error)

	// List retrieves a user's tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListForReport loads tasks with their project; nil userID loads every task
	ListForReport(userID *uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error

	// TitleExists reports whether the user already has a task with this title in the project
	TitleExists(userID, projectID uint64, title string, excludeID *uint64) (bool, error)

	// Count counts all tasks
	Count() (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID     uint64
	ProjectID  *uint64
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByIDForUser finds a project owned by userID with optional preloading
	FindByIDForUser(id, userID uint64, preload ...string) (*models.Project, error)

	// ListByUser lists a user's projects with their tasks
	ListByUser(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and its tasks in one transaction
	Delete(id uint64) error

	// NameExists reports whether the user already owns a project with this name
	NameExists(userID uint64, name string, excludeID *uint64) (bool, error)

	// Count counts all projects
	Count() (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalised email
	FindByEmail(email string) (*models.User, error)

	// List lists users page by page, oldest first
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// ListWithProjectsAndTasks loads every user with nested projects and tasks
	ListWithProjectsAndTasks() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user with their projects, tasks and reset tokens
	Delete(id uint64) error

	// Count counts all users
	Count() (int64, error)
}

// PasswordResetRepository defines the interface for password-reset token storage
type PasswordResetRepository interface {
	// Create stores a new token
	Create(token *models.PasswordResetToken) error

	// FindByToken finds a token by its value
	FindByToken(token string) (*models.PasswordResetToken, error)

	// Delete removes a token
	Delete(id uint64) error

	// DeleteExpired removes every token that expired before now
	DeleteExpired(now time.Time) (int64, error)

	// ResetPassword sets the password of the token's user and consumes the token atomically
	ResetPassword(token *models.PasswordResetToken, passwordHash string) error
}
