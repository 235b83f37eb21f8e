package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates a new USER account.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	return createUser(s.userRepo, input.Name, input.Email, input.Password, models.RoleUser)
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the fields a user may change on their own account.
type UpdateProfileInput struct {
	UserID   uint64
	Name     *string
	Password *string
}

// UpdateProfile changes the caller's name and/or password.
func (s *AuthService) UpdateProfile(input UpdateProfileInput) (*models.User, error) {
	verr := &ValidationError{}
	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		validateUserName(verr, name)
	}
	if input.Password != nil {
		validatePassword(verr, "password", *input.Password)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.GetUser(input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = name
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func createUser(userRepo repository.UserRepository, name, email, password string, role models.UserRole) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	verr := &ValidationError{}
	validateUserName(verr, name)
	if email == "" {
		verr.Add("email", "Email is required")
	}
	validatePassword(verr, "password", password)
	if !role.IsValid() {
		verr.Add("role", "Invalid role")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hashed), nil
}

func validateUserName(verr *ValidationError, name string) {
	switch {
	case name == "":
		verr.Add("name", "Name is required")
	case utf8.RuneCountInString(name) > constants.MaxNameLength:
		verr.Add("name", fmt.Sprintf("Name must be at most %d characters", constants.MaxNameLength))
	}
}

func validatePassword(verr *ValidationError, field, password string) {
	if len(password) < constants.MinPasswordLength {
		verr.Add(field, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	}
}
