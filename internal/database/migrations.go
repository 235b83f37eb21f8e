package database

import (
	"fmt"

	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema, including the composite unique
// indexes declared on the models, then the secondary indexes.
func Migrate(db *gorm.DB) error {
	logger.Logger.Info("Running database migrations...")
	if err := db.AutoMigrate(models.AllModels...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := EnsureIndexes(db); err != nil {
		return err
	}
	logger.Logger.Info("Database migrations completed")
	return nil
}

// EnsureIndexes adds the indexes used by list filtering, sorting and reporting.
func EnsureIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"tasks", "idx_tasks_user_id", "user_id"},
		{"projects", "idx_projects_status", "status"},
		{"password_reset_tokens", "idx_reset_tokens_expires_at", "expires_at"},
	}

	// HasIndex goes through the dialect's migrator, so the same check works on
	// MySQL, PostgreSQL and SQLite.
	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logger.Logger.Debugf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
