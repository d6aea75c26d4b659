package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
		Data:    data,
	})
}

// ServiceUnavailable sends a 503 response carrying the failed checks
func ServiceUnavailable(c *gin.Context, message string, data interface{}) {
	Error(c, http.StatusServiceUnavailable, message, data)
}
