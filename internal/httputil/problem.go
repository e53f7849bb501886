// Package httputil provides HTTP utility functions for request and response handling.
//
// Error responses follow RFC 7807 (Problem Details for HTTP APIs) and are
// served with the application/problem+json media type.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/numbers/internal/errors"
)

// ProblemDetails is the RFC 7807 response body used for every error.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// statusTitles maps HTTP status codes to RFC 7807 titles.
var statusTitles = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusUnprocessableEntity: "Validation Error",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
}

// WriteProblem writes an RFC 7807 problem details response.
// The instance field is set to the request path.
func WriteProblem(c *gin.Context, status int, detail string) {
	title, ok := statusTitles[status]
	if !ok {
		title = "Error"
	}

	problem := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request.URL.Path,
	}

	c.Header("Content-Type", "application/problem+json")
	c.JSON(status, problem)
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a problem
// details response using Gin.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var detail string

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		detail = "The requested resource was not found"

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		detail = err.Error()

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		detail = "Authentication is required"

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		detail = "You don't have permission to access this resource"

	case apperrors.Is(err, apperrors.ErrStorageFailure):
		statusCode = http.StatusInternalServerError
		detail = "The record store is currently unavailable"

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		detail = "An unexpected error occurred"
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.Any("error", err),
		)
	}

	WriteProblem(c, statusCode, detail)
}

// HandleBadRequestGin writes a 400 Bad Request problem for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	WriteProblem(c, http.StatusBadRequest, err.Error())
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity problem for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	WriteProblem(c, http.StatusUnprocessableEntity, err.Error())
}
