package api

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API.
type ErrorCode string

const (
	ErrorCodeInvalidQuery  ErrorCode = "INVALID_QUERY"
	ErrorCodeInvalidScheme ErrorCode = "INVALID_SCHEME"
)

// APIError is the standardized error response body.
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SendError writes a standardized APIError response.
func SendError(c *gin.Context, status int, code ErrorCode, message string) {
	c.JSON(status, APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	})
}
