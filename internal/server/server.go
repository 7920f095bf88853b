// Package server exposes playbook execution over a small HTTP API.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmakino/opskit/internal/domain/entities"
	"github.com/tmakino/opskit/internal/domain/interfaces"
	"github.com/tmakino/opskit/internal/external-adapters/ansible"
)

const serverVersion = "0.1.0"

// PlaybookExecutor runs one playbook invocation. Satisfied by the
// ansible adapter and by fakes in tests.
type PlaybookExecutor interface {
	RunPlaybook(ctx context.Context, req ansible.PlaybookRequest) (*entities.RunReport, error)
}

// Config holds the HTTP API settings
type Config struct {
	Addr       string
	AuthToken  string // empty disables authentication
	RunTimeout time.Duration
}

// Server wires the gin router to a playbook executor
type Server struct {
	cfg     Config
	runner  PlaybookExecutor
	logger  interfaces.Logger
	router  *gin.Engine
	started time.Time
}

// NewServer builds the router with middleware and routes registered
func NewServer(cfg Config, runner PlaybookExecutor, logger interfaces.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.RunTimeout == 0 {
		cfg.RunTimeout = 30 * time.Minute
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		cfg:     cfg,
		runner:  runner,
		logger:  logger,
		router:  router,
		started: time.Now(),
	}

	router.Use(gin.Recovery())
	router.Use(s.requestObserver())
	s.registerRoutes()

	return s
}

// Router exposes the underlying engine, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until the listener fails
func (s *Server) Start() error {
	s.logger.Info("API listening", interfaces.F("addr", s.cfg.Addr))
	return s.router.Run(s.cfg.Addr)
}

// requestObserver logs each request and feeds the HTTP metrics
func (s *Server) requestObserver() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		recordHTTPRequest(c.Request.Method, path, status, time.Since(start))

		fields := []interfaces.Field{
			interfaces.F("method", c.Request.Method),
			interfaces.F("path", path),
			interfaces.F("status", status),
			interfaces.F("duration", time.Since(start).String()),
			interfaces.F("client_ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			s.logger.Error("http request", fields...)
		case status >= 400:
			s.logger.Warn("http request", fields...)
		default:
			s.logger.Info("http request", fields...)
		}
	}
}

// requireAuth rejects requests without the configured bearer token.
// A no-op when no token is configured.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.AuthToken == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != s.cfg.AuthToken {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}
		c.Next()
	}
}
