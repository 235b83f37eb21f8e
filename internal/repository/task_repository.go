package repository

import (
	"github.com/yukikurage/taskflow-api/internal/database"
	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return translateError(r.db.Omit(clause.Associations).Create(task).Error)
}

// FindByIDForUser finds a task owned by userID with optional preloading
func (r *GormTaskRepository) FindByIDForUser(id, userID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("tasks.user_id = ?", userID).First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves a user's tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.user_id = ?", filter.UserID)

	// Apply filters
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("tasks.created_at DESC").
		Order("tasks.id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Project").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListForReport loads tasks with their project; nil userID loads every task
func (r *GormTaskRepository) ListForReport(userID *uint64) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Preload("Project").Order("tasks.created_at DESC").Order("tasks.id DESC")
	if userID != nil {
		query = query.Where("tasks.user_id = ?", *userID)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return translateError(r.db.Omit(clause.Associations).Save(task).Error)
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// TitleExists reports whether the user already has a task with this title in the project
func (r *GormTaskRepository) TitleExists(userID, projectID uint64, title string, excludeID *uint64) (bool, error) {
	query := r.db.Model(&models.Task{}).
		Where("user_id = ? AND project_id = ? AND title = ?", userID, projectID, title)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all tasks
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}
