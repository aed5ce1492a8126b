package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kelsos/makerspace-demo/internal/config"
	"github.com/kelsos/makerspace-demo/internal/logger"
	"github.com/kelsos/makerspace-demo/internal/services"
	"github.com/kelsos/makerspace-demo/internal/session"
)

// MethodUpdate is the non-standard verb the task update route is served on
const MethodUpdate = "UPDATE"

// Route describes one API endpoint
type Route struct {
	Method  string
	Path    string
	Summary string
	handler gin.HandlerFunc
}

// Server is the MakerSpace demo API server
type Server struct {
	config     *config.Config
	services   *services.Services
	router     *gin.Engine
	observer   Observer
	httpServer *http.Server
}

// Option customizes a Server
type Option func(*Server)

// WithObserver reports served requests and seeded sessions to observer
func WithObserver(observer Observer) Option {
	return func(s *Server) {
		s.observer = observer
	}
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, svc *services.Services, opts ...Option) *Server {
	s := &Server{
		config:   cfg,
		services: svc,
		router:   gin.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(
		gin.CustomRecovery(s.recover),
		requestID(),
		s.accessLog(),
		cors.New(corsConfig(cfg)),
		session.Middleware(cfg.SessionName, session.NewStore(cfg.SessionSecret)),
	)

	for _, route := range s.routes() {
		s.router.Handle(route.Method, route.Path, route.handler)
	}

	return s
}

func (s *Server) routes() []Route {
	return []Route{
		{http.MethodPost, "/api/users", "Log in as the tenant user", s.handleLogin},
		{http.MethodPut, "/api/users", "Acknowledge user creation", s.handleCreateUser},
		{http.MethodDelete, "/api/users", "Acknowledge user deletion", s.handleDeleteUser},
		{http.MethodGet, "/api/users", "List users", s.handleListUsers},
		{http.MethodPatch, "/api/users", "Update a user (not implemented)", s.handleUpdateUser},
		{http.MethodGet, "/api/tasks", "List the session's tasks", s.handleListTasks},
		{http.MethodPost, "/api/tasks", "Create a task (not implemented)", s.handleCreateTask},
		{http.MethodDelete, "/api/tasks", "Acknowledge resolving a task", s.handleResolveTask},
		{MethodUpdate, "/api/tasks", "Update a task (not implemented)", s.handleUpdateTask},
		{http.MethodPost, "/api/machines", "Canned machine status", s.handleMachines},
		{http.MethodPost, "/api/visitors", "Canned visits", s.handleVisitors},
	}
}

// Routes lists every endpoint the server registers
func Routes() []Route {
	routes := (&Server{}).routes()
	for i := range routes {
		routes[i].handler = nil
	}
	return routes
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions, MethodUpdate,
		},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if cfg.AllowsAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}

	return corsCfg
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving MakerSpace demo API on %s", s.config.Address())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
