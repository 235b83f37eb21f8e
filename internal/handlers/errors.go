package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/services"
)

func init() {
	// Report binding failures under the JSON field names clients send
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// bindJSON decodes the request body into req. On failure it writes the
// error response and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			apierrors.ValidationFailed(c, "", bindingFieldErrors(verrs))
			return false
		}
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

func bindingFieldErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "This field is required"
		case "email":
			fields[fe.Field()] = "Must be a valid email address"
		case "min":
			fields[fe.Field()] = fmt.Sprintf("Must be at least %s characters", fe.Param())
		case "max":
			fields[fe.Field()] = fmt.Sprintf("Must be at most %s characters", fe.Param())
		case "oneof":
			fields[fe.Field()] = fmt.Sprintf("Must be one of: %s", fe.Param())
		default:
			fields[fe.Field()] = "Invalid value"
		}
	}
	return fields
}

// respondError maps service errors to API responses. Anything unrecognised
// is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	if verr, ok := services.IsValidationError(err); ok {
		apierrors.ValidationFailed(c, "", verr.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrNameConflict):
		apierrors.NameConflict(c, "")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrUserBlocked):
		apierrors.Unauthorized(c, "Account is blocked")
	case errors.Is(err, services.ErrInvalidResetToken):
		apierrors.BadRequest(c, "Invalid or expired reset token")
	case errors.Is(err, services.ErrCannotModifySelf):
		apierrors.InvalidOperation(c, "You cannot demote, block or delete your own account")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured")
	case errors.Is(err, services.ErrAIRequestFailed), errors.Is(err, services.ErrAINoTasksGenerated):
		logger.Logger.Warnf("AI task generation failed: %v", err)
		apierrors.BadGateway(c, "Failed to generate tasks")
	default:
		logger.Logger.Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}
