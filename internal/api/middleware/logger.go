package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

const (
	// RequestIDHeader carries the request id in and out
	RequestIDHeader = "X-Request-ID"
	// ContextRequestIDKey is where handlers find the request id
	ContextRequestIDKey = "request_id"
)

// LoggerMiddleware creates request logging middleware. Every request gets
// an id, taken from the incoming header when present.
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// Process request
		c.Next()

		duration := time.Since(startTime)
		statusCode := c.Writer.Status()

		log.WithRequestID(requestID).Info("HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", c.ClientIP(),
		)

		if len(c.Errors) > 0 {
			log.Error("Request errors", "request_id", requestID, "errors", c.Errors.String())
		}
	}
}
