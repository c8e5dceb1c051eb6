package middleware

import (
	"time"

	"integration-service/internal/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one log line per request once it has been served.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request", map[string]any{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": RequestIDFromContext(c.Request.Context()),
		})
	}
}
