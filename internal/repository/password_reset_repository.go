package repository

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormPasswordResetRepository is a GORM implementation of PasswordResetRepository
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new PasswordResetRepository
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// Create stores a new token
func (r *GormPasswordResetRepository) Create(token *models.PasswordResetToken) error {
	return translateError(r.db.Create(token).Error)
}

// FindByToken finds a token by its value
func (r *GormPasswordResetRepository) FindByToken(token string) (*models.PasswordResetToken, error) {
	var record models.PasswordResetToken
	if err := r.db.Where("token = ?", token).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a token
func (r *GormPasswordResetRepository) Delete(id uint64) error {
	return r.db.Delete(&models.PasswordResetToken{}, id).Error
}

// DeleteExpired removes every token that expired before now
func (r *GormPasswordResetRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}

// ResetPassword updates the password of the token's user and deletes the token in one transaction
func (r *GormPasswordResetRepository) ResetPassword(token *models.PasswordResetToken, passwordHash string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("email = ?", token.Email).
			Update("password_hash", passwordHash)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Delete(&models.PasswordResetToken{}, token.ID).Error
	})
}
