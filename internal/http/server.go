// Package http provides the HTTP server and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/numbers/internal/auth/domain"
	authHTTP "github.com/allisson/numbers/internal/auth/http"
	authUseCase "github.com/allisson/numbers/internal/auth/usecase"
	numbersHTTP "github.com/allisson/numbers/internal/numbers/http"
)

// Server represents the HTTP API server.
type Server struct {
	db     *sql.DB
	host   string
	port   int
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		host:   host,
		port:   port,
		logger: logger,
	}
}

// RouterConfig holds the handlers and middleware used to build the route table.
type RouterConfig struct {
	AuthHandler   *authHTTP.AuthHandler
	NumberHandler *numbersHTTP.NumberHandler
	AuthUseCase   authUseCase.AuthUseCase

	// LoginRateLimiter is applied to the login endpoint only. Nil disables it.
	LoginRateLimiter gin.HandlerFunc

	// MetricsMiddleware records HTTP metrics for every request. Nil disables it.
	MetricsMiddleware gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string
}

// SetupRouter builds the route table with the shared middleware chain.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	// Health and readiness endpoints (no authentication)
	router.GET("/", s.healthHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Login is the only unauthenticated business endpoint
	if cfg.LoginRateLimiter != nil {
		router.POST("/login", cfg.LoginRateLimiter, cfg.AuthHandler.LoginHandler)
	} else {
		router.POST("/login", cfg.AuthHandler.LoginHandler)
	}

	// Everything else requires a valid token; each route additionally
	// requires the capability frozen into the token at issuance.
	authenticated := router.Group("",
		authHTTP.AuthenticationMiddleware(cfg.AuthUseCase, s.logger))

	authenticated.POST("/logout", cfg.AuthHandler.LogoutHandler)

	authenticated.POST("/numbers",
		authHTTP.AuthorizationMiddleware(authDomain.NumbersWriteCapability, s.logger),
		cfg.NumberHandler.CreateHandler)
	authenticated.GET("/numbers",
		authHTTP.AuthorizationMiddleware(authDomain.NumbersReadCapability, s.logger),
		cfg.NumberHandler.ListHandler)
	authenticated.GET("/numbers/:id",
		authHTTP.AuthorizationMiddleware(authDomain.NumbersReadCapability, s.logger),
		cfg.NumberHandler.GetHandler)
	authenticated.PUT("/numbers/:id",
		authHTTP.AuthorizationMiddleware(authDomain.NumbersWriteCapability, s.logger),
		cfg.NumberHandler.UpdateHandler)
	authenticated.DELETE("/numbers/:id",
		authHTTP.AuthorizationMiddleware(authDomain.NumbersDeleteCapability, s.logger),
		cfg.NumberHandler.DeleteHandler)
	authenticated.GET("/stats",
		authHTTP.AuthorizationMiddleware(authDomain.NumbersReadCapability, s.logger),
		cfg.NumberHandler.StatsHandler)

	s.router = router
}

// GetRouter returns the configured router for testing purposes.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, including a
// database connectivity check.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
