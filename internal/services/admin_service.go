package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/utils"
	"gorm.io/gorm"
)

// AdminService manages user accounts on behalf of administrators.
type AdminService struct {
	userRepo repository.UserRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents input for an administrator creating an account
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

// UpdateUserInput represents an administrator's changes to an account.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	ID        uint64
	Name      *string
	Role      *models.UserRole
	IsBlocked *bool
}

// ListUsers returns one page of users
func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// CreateUser creates an account with the given role (USER when empty)
func (s *AdminService) CreateUser(input CreateUserInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	return createUser(s.userRepo, input.Name, input.Email, input.Password, role)
}

// UpdateUser applies changes to an account. Administrators cannot demote or
// block themselves.
func (s *AdminService) UpdateUser(actorID uint64, input UpdateUserInput) (*models.User, error) {
	verr := &ValidationError{}
	if input.ID == 0 {
		verr.Add("id", "User id is required")
	}
	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		validateUserName(verr, name)
	}
	if input.Role != nil && !input.Role.IsValid() {
		verr.Add("role", "Invalid role")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if input.ID == actorID {
		if (input.Role != nil && *input.Role != models.RoleAdmin) || (input.IsBlocked != nil && *input.IsBlocked) {
			return nil, ErrCannotModifySelf
		}
	}

	user, err := s.userRepo.FindByID(input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		user.Name = name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsBlocked != nil {
		user.IsBlocked = *input.IsBlocked
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account with everything it owns
func (s *AdminService) DeleteUser(actorID, userID uint64) error {
	if userID == 0 {
		return NewValidationError("id", "User id is required")
	}
	if userID == actorID {
		return ErrCannotModifySelf
	}

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// EnsureAdmin makes sure an ADMIN account exists for email, creating it or
// promoting the existing user. An empty email is a no-op.
func (s *AdminService) EnsureAdmin(name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}

	user, err := s.userRepo.FindByEmail(email)
	switch {
	case err == nil:
		if user.IsAdmin() && !user.IsBlocked {
			return user, nil
		}
		user.Role = models.RoleAdmin
		user.IsBlocked = false
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to promote admin: %w", err)
		}
		logger.Logger.Infof("Promoted %s to administrator", email)
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user, err := createUser(s.userRepo, name, email, password, models.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to create admin: %w", err)
		}
		logger.Logger.Infof("Created administrator %s", email)
		return user, nil
	default:
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
}
