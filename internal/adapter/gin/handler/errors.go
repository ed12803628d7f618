package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "library-service/pkg/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// handleError converts usecase errors to appropriate HTTP responses
func handleError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		conflictErr   *apperrors.ConflictError
		domainErr     *apperrors.DomainError
		internalErr   *apperrors.InternalError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Message: err.Error()})
	case errors.As(err, &domainErr):
		c.JSON(http.StatusConflict, ErrorResponse{Error: domainErr.Code, Message: domainErr.Message})
	case errors.As(err, &internalErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: internalErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
