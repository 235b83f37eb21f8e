package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/mailer"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/utils"
	"gorm.io/gorm"
)

// PasswordResetService issues and consumes single-use password reset tokens.
type PasswordResetService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	mailer    mailer.Mailer
	baseURL   string
	ttl       time.Duration
	now       func() time.Time
}

// NewPasswordResetService creates a new PasswordResetService. A non-positive
// ttl falls back to the default token lifetime.
func NewPasswordResetService(userRepo repository.UserRepository, resetRepo repository.PasswordResetRepository, m mailer.Mailer, baseURL string, ttl time.Duration) *PasswordResetService {
	if ttl <= 0 {
		ttl = constants.DefaultResetTokenTTL
	}
	return &PasswordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    m,
		baseURL:   baseURL,
		ttl:       ttl,
		now:       time.Now,
	}
}

// RequestReset creates a token for email and mails the reset link. Unknown
// addresses succeed silently so callers cannot probe for accounts.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return NewValidationError("email", "Email is required")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Logger.Debugf("Password reset requested for unknown email %s", email)
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	value, err := utils.GenerateToken(constants.ResetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &models.PasswordResetToken{
		Email:     user.Email,
		Token:     value,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.resetRepo.Create(token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	body, err := mailer.RenderPasswordReset(mailer.PasswordResetData{
		Name:     user.Name,
		Link:     s.resetLink(value),
		ValidFor: s.ttl.String(),
	})
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, mailer.Message{
		To:      user.Email,
		ToName:  user.Name,
		Subject: "Reset your TaskFlow password",
		HTML:    body,
	}); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes token and sets the new password. Expired tokens are
// deleted and rejected.
func (s *PasswordResetService) ResetPassword(token, newPassword string) error {
	verr := &ValidationError{}
	if token == "" {
		verr.Add("token", "Token is required")
	}
	validatePassword(verr, "newPassword", newPassword)
	if err := verr.OrNil(); err != nil {
		return err
	}

	record, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to find reset token: %w", err)
	}

	if record.IsExpired(s.now()) {
		if err := s.resetRepo.Delete(record.ID); err != nil {
			logger.Logger.Warnf("Failed to delete expired reset token %d: %v", record.ID, err)
		}
		return ErrInvalidResetToken
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.resetRepo.ResetPassword(record, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// PurgeExpired deletes every expired token and returns how many were removed.
func (s *PasswordResetService) PurgeExpired() (int64, error) {
	n, err := s.resetRepo.DeleteExpired(s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge reset tokens: %w", err)
	}
	return n, nil
}

func (s *PasswordResetService) resetLink(token string) string {
	return s.baseURL + "/auth/reset-password?token=" + url.QueryEscape(token)
}
