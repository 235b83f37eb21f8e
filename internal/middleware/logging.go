package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/yukikurage/taskflow-api/internal/constants"
)

// RequestID propagates the X-Request-ID header or assigns a new UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequest, id)
		c.Header(constants.RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request, at ERROR for 5xx, WARN for 4xx
// and INFO otherwise.
func RequestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		logMsg := func(format string, args ...interface{}) {
			switch {
			case status >= 500:
				l.Errorf(format, args...)
			case status >= 400:
				l.Warnf(format, args...)
			default:
				l.Infof(format, args...)
			}
		}

		logMsg("%s %s - %d - %.2fms - %s [%s]",
			c.Request.Method,
			c.Request.URL.RequestURI(),
			status,
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
			c.GetString(constants.ContextKeyRequest),
		)
	}
}
