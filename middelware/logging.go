package middelware

import (
	"aihub-backend/models"
	"aihub-backend/utils/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware provides request logging
type LoggingMiddleware struct {
	logger logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(log logger.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log,
	}
}

var skipLogPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// StructuredLogger logs one structured line per request
func (m *LoggingMiddleware) StructuredLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if skipLogPaths[path] {
			return
		}

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"query":      raw,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, ok := c.Get("user_id"); ok {
			fields["user_id"] = userID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		log := m.logger.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("HTTP request completed with error")
		case status >= 400:
			log.Warn("HTTP request completed with client error")
		default:
			log.Info("HTTP request completed")
		}
	}
}

// Recovery middleware with logging
func (m *LoggingMiddleware) Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		m.logger.Errorf("Panic recovered: %v", recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
			Error:   true,
			Message: "An unexpected error occurred",
		})
	})
}
