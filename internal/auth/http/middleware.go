package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	authUseCase "github.com/allisson/numbers/internal/auth/usecase"
	apperrors "github.com/allisson/numbers/internal/errors"
	"github.com/allisson/numbers/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer token in the
// Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive prefix)
// 2. Validates the token via AuthUseCase.Authenticate (blacklist first, then signature/expiry)
// 3. Stores the verified claims and the raw token in the request context
//
// Error handling:
//   - Missing/malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/revoked token → 401 Unauthorized
func AuthenticationMiddleware(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClaims(c.Request.Context(), claims)
		ctx = WithToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("username", claims.Subject),
			slog.String("role", claims.Role))

		c.Next()
	}
}

// AuthorizationMiddleware gates a route on a capability in the verified claims.
//
// Must run after AuthenticationMiddleware. The check is a pure membership
// test against the capability set frozen into the token at issuance; the
// credential table is never consulted again.
//
// Error handling:
//   - No claims in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Claims lack the capability → 403 Forbidden
func AuthorizationMiddleware(
	capability authDomain.Capability,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("authorization failed: no verified claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !claims.HasCapability(capability) {
			logger.Debug("authorization failed: insufficient permissions",
				slog.String("username", claims.Subject),
				slog.String("capability", string(capability)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
