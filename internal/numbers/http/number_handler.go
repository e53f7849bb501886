// Package http provides HTTP handlers for number record operations.
// Every handler resolves the owner from the verified token claims; clients
// can never address another user's records.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/numbers/internal/auth/http"
	apperrors "github.com/allisson/numbers/internal/errors"
	"github.com/allisson/numbers/internal/httputil"
	numbersDomain "github.com/allisson/numbers/internal/numbers/domain"
	"github.com/allisson/numbers/internal/numbers/http/dto"
	numbersUseCase "github.com/allisson/numbers/internal/numbers/usecase"
	customValidation "github.com/allisson/numbers/internal/validation"
)

// NumberHandler handles HTTP requests for number record operations.
type NumberHandler struct {
	numberUseCase numbersUseCase.NumberUseCase
	logger        *slog.Logger
}

// NewNumberHandler creates a new number handler with required dependencies.
func NewNumberHandler(
	numberUseCase numbersUseCase.NumberUseCase,
	logger *slog.Logger,
) *NumberHandler {
	return &NumberHandler{
		numberUseCase: numberUseCase,
		logger:        logger,
	}
}

// username resolves the record owner from the verified token claims.
func (h *NumberHandler) username(c *gin.Context) (string, bool) {
	claims, ok := authHTTP.GetClaims(c.Request.Context())
	if !ok || claims == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return "", false
	}
	return claims.Subject, true
}

// recordID parses the record ID path parameter. An unparseable ID cannot
// reference an existing record, so it maps to the same not-found error as an
// unknown ID.
func (h *NumberHandler) recordID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeNotFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// writeNotFound writes the uniform not-found problem for absent or
// foreign-owned records.
func (h *NumberHandler) writeNotFound(c *gin.Context) {
	httputil.WriteProblem(c, http.StatusNotFound, "Number not found")
}

// handleError maps record errors to problem responses, preserving the exact
// not-found detail used across all record operations.
func (h *NumberHandler) handleError(c *gin.Context, err error) {
	if apperrors.Is(err, numbersDomain.ErrNumberNotFound) {
		h.writeNotFound(c)
		return
	}
	httputil.HandleErrorGin(c, err, h.logger)
}

// CreateHandler stores a new positive integer record for the current user.
// POST /numbers - Requires the numbers:write capability.
// Returns 201 Created with the stored record.
func (h *NumberHandler) CreateHandler(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	var req dto.NumberRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	number, err := h.numberUseCase.Create(c.Request.Context(), username, req.Value)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNumberToResponse(number))
}

// ListHandler returns all of the current user's records ordered by creation time.
// GET /numbers - Requires the numbers:read capability.
func (h *NumberHandler) ListHandler(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	numbers, err := h.numberUseCase.List(c.Request.Context(), username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapNumbersToListResponse(username, numbers))
}

// GetHandler returns a single record owned by the current user.
// GET /numbers/:id - Requires the numbers:read capability.
// Returns 404 both for unknown IDs and records owned by other users.
func (h *NumberHandler) GetHandler(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	id, ok := h.recordID(c)
	if !ok {
		return
	}

	number, err := h.numberUseCase.Get(c.Request.Context(), id, username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapNumberToResponse(number))
}

// UpdateHandler replaces the value of a record owned by the current user.
// PUT /numbers/:id - Requires the numbers:write capability.
// Returns 200 OK with the updated record.
func (h *NumberHandler) UpdateHandler(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	id, ok := h.recordID(c)
	if !ok {
		return
	}

	var req dto.NumberRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	number, err := h.numberUseCase.Update(c.Request.Context(), id, username, req.Value)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapNumberToResponse(number))
}

// DeleteHandler removes a record owned by the current user.
// DELETE /numbers/:id - Requires the numbers:delete capability.
// Returns 200 OK with a confirmation message.
func (h *NumberHandler) DeleteHandler(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	id, ok := h.recordID(c)
	if !ok {
		return
	}

	if err := h.numberUseCase.Delete(c.Request.Context(), id, username); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Number deleted"})
}

// StatsHandler returns aggregate statistics over the current user's records.
// GET /stats - Requires the numbers:read capability.
func (h *NumberHandler) StatsHandler(c *gin.Context) {
	username, ok := h.username(c)
	if !ok {
		return
	}

	stats, err := h.numberUseCase.Summarize(c.Request.Context(), username)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatisticsToResponse(username, stats))
}
