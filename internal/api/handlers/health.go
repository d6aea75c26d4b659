package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
	"github.com/amiyamandal-dev/bizbrief/pkg/response"
)

// Pinger reports whether the backend answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	backend Pinger
	timeout time.Duration
	logger  *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(backend Pinger, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		backend: backend,
		timeout: 5 * time.Second,
		logger:  logger.WithComponent("health-handler"),
	}
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"status": "ok",
	})
}

// Readiness checks that the backend is reachable
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	err := h.backend.Ping(ctx)
	checks := gin.H{
		"backend": gin.H{
			"healthy":    err == nil,
			"latency_ms": time.Since(start).Milliseconds(),
		},
	}

	if err != nil {
		h.logger.Warn("Backend not reachable", "error", err)
		response.ServiceUnavailable(c, "not ready", gin.H{"status": "not ready", "checks": checks})
		return
	}

	response.Success(c, gin.H{"status": "ready", "checks": checks})
}
