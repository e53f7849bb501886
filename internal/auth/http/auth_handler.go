package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	"github.com/allisson/numbers/internal/auth/http/dto"
	authUseCase "github.com/allisson/numbers/internal/auth/usecase"
	apperrors "github.com/allisson/numbers/internal/errors"
	"github.com/allisson/numbers/internal/httputil"
	customValidation "github.com/allisson/numbers/internal/validation"
)

// AuthHandler handles HTTP requests for login and logout operations.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler verifies credentials and returns a signed access token.
// POST /login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the token, or 401 for invalid credentials.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

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

	input := &authDomain.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	output, err := h.authUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
	}

	c.JSON(http.StatusOK, response)
}

// LogoutHandler revokes the token that authenticated the current request.
// POST /logout - Requires authentication. Idempotent: logging out twice with
// the same token succeeds both times (the second request fails authentication
// upstream, which is the observable contract).
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token, ok := GetToken(c.Request.Context())
	if !ok || token == "" {
		// AuthenticationMiddleware always stores the token; missing means the
		// middleware did not run.
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	h.authUseCase.Logout(c.Request.Context(), token)

	if claims, ok := GetClaims(c.Request.Context()); ok {
		h.logger.Info("user logged out", slog.String("username", claims.Subject))
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}
