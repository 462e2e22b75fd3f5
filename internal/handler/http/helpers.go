package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/handler/http/dto"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// errStatus maps a domain error onto its HTTP status and a stable,
// user-safe message. Unknown errors become a generic 500.
func errStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, apperr.ErrUserNotFound):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden, "You do not have permission to perform this action"
	case errors.Is(err, apperr.ErrAlreadyEnrolled):
		return http.StatusConflict, "Already enrolled in this course"
	case errors.Is(err, apperr.ErrEnrollmentFailed):
		return http.StatusBadGateway, "Failed to enroll in course"
	case errors.Is(err, apperr.ErrUnenrollmentFailed):
		return http.StatusBadGateway, "Failed to unenroll from course"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperr.ErrProfileCreationFailed):
		return http.StatusBadGateway, "Failed to set up user profile"
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// DomainErrorHandler writes the HTTP response for a domain error.
func DomainErrorHandler(c *gin.Context, err error) {
	status, message := errStatus(err)
	ErrorHandler(c, status, message)
}
