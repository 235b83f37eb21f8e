package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/constants"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

// RequireAuth checks if the user is authenticated via session and that the
// session's account still exists. A session of a blocked user keeps working.
func RequireAuth(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadSessionUser(c, userRepo)
		if !ok {
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin lets through only sessions of unblocked ADMIN users. Every
// other caller, authenticated or not, gets 401.
func RequireAdmin(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadSessionUser(c, userRepo)
		if !ok {
			return
		}

		if !user.IsAdmin() || user.IsBlocked {
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

// GetUser retrieves the user loaded by RequireAuth or RequireAdmin
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// loadSessionUser resolves the session's user, answering 401 when there is no
// session or its account is gone.
func loadSessionUser(c *gin.Context, userRepo repository.UserRepository) (*models.User, bool) {
	userID, ok := sessionUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, false
	}

	user, err := userRepo.FindByID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Logger.Errorf("Failed to load session user %d: %v", userID, err)
			apierrors.InternalError(c, "")
			return nil, false
		}
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	return user, true
}

func sessionUserID(c *gin.Context) (uint64, bool) {
	session := sessions.Default(c)
	return toUserID(session.Get(constants.ContextKeyUserID))
}

func toUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
