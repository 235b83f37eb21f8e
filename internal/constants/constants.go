package constants

import "time"

// Session and context keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
	SessionCookieName = "task_session"
	RequestIDHeader   = "X-Request-ID"
	ContextKeyRequest = "request_id"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxNameLength     = 255
)

// Password reset
const (
	ResetTokenBytes      = 32
	DefaultResetTokenTTL = time.Hour
)

// MaxAIGeneratedTasks caps the number of suggestions accepted from the AI service.
const MaxAIGeneratedTasks = 20
