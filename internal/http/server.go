// Package http provides the HTTP API for taskweave.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/auth"
	"github.com/fyrsmithlabs/taskweave/internal/extraction"
	"github.com/fyrsmithlabs/taskweave/internal/storage"
)

// Server provides HTTP endpoints for taskweave.
type Server struct {
	echo      *echo.Echo
	store     *storage.Store
	extractor *extraction.Service
	sessions  *auth.Sessions
	logger    *zap.Logger
	config    *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/health":      true,
	"/metrics":     true,
	"/api/v1/auth": true,
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(store *storage.Store, extractor *extraction.Service, sessions *auth.Sessions, logger *zap.Logger, cfg *Config) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("sessions cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8484}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestMetrics())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})
	e.Use(sessions.Middleware(func(path string) bool {
		return publicPaths[path]
	}))

	s := &Server{
		echo:      e,
		store:     store,
		extractor: extractor,
		sessions:  sessions,
		logger:    logger,
		config:    cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")

	v1.POST("/auth", s.handleLogin)
	v1.GET("/auth", s.handleSessionProbe)
	v1.DELETE("/auth", s.handleLogout)

	v1.POST("/rewrite", s.handleRewrite)
	v1.GET("/rewrite", s.handleRewriteStatus)

	v1.POST("/notes", s.handleCreateNote)

	v1.GET("/tasks", s.handleListTasks)
	v1.POST("/tasks", s.handleCreateTasks)
	v1.PATCH("/tasks/:id", s.handleUpdateTask)
	v1.DELETE("/tasks/:id", s.handleDeleteTask)

	v1.GET("/projects", s.handleListProjects)
	v1.POST("/projects", s.handleCreateProject)
	v1.PATCH("/projects/:id", s.handleUpdateProject)
	v1.DELETE("/projects/:id", s.handleDeleteProject)

	v1.GET("/settings", s.handleGetSettings)
	v1.PUT("/settings", s.handleUpdateSettings)

	v1.GET("/plan", s.handlePlan)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// notFound maps storage.ErrNotFound to a 404, passing other errors
// through as 500s.
func notFound(err error) error {
	if err == storage.ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return err
}
