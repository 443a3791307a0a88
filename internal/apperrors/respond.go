package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the standardized error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Respond maps a service error onto an HTTP response. Unrecognized errors
// (including storage faults that exhausted their retries) become a generic
// 500 so no internal detail leaks.
func Respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		write(c, http.StatusUnauthorized, "UNAUTHORIZED", "You are not allowed to perform this action")
	case errors.Is(err, ErrForbidden):
		write(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrNotFound):
		write(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, ErrConflict):
		write(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrLimitExceeded):
		write(c, http.StatusConflict, "LIMIT_EXCEEDED", err.Error())
	case errors.Is(err, ErrHasDependents):
		write(c, http.StatusConflict, "HAS_DEPENDENTS", err.Error())
	case errors.Is(err, ErrValidation):
		write(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	default:
		write(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// BadRequest sends a 400 response for malformed request bodies.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	write(c, http.StatusBadRequest, "INVALID_INPUT", message)
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	write(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func write(c *gin.Context, status int, code, message string) {
	c.JSON(status, &APIError{Code: code, Message: message})
}
