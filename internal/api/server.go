// Package api assembles the HTTP surface: router, middleware chain, routes,
// and server lifecycle.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsrin/en-app-analytics/internal/config"
	"github.com/vsrin/en-app-analytics/internal/logger"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server is the analytics HTTP server with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logger.Logger
	cfg    *config.Config
}

// NewServer builds the router with the standard middleware chain, registers
// all routes, and wraps everything in an http.Server.
func NewServer(cfg *config.Config, store storage.Store, log logger.Logger) *Server {
	if cfg.Service.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware([]string{"*"}))

	RegisterRoutes(router, cfg, store, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		router: router,
		server: httpServer,
		logger: log,
		cfg:    cfg,
	}
}

// Router returns the underlying Gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until it is shut down. Returns nil on clean close.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		logger.String("address", s.server.Addr),
		logger.String("service", s.cfg.Service.Name),
		logger.String("version", s.cfg.Service.Version),
		logger.String("base_path", s.cfg.Service.BasePath),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// Run starts the server and blocks until SIGINT/SIGTERM or context
// cancellation, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("Shutdown signal received", logger.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	// Fresh context: the incoming one may already be cancelled.
	return s.Shutdown(context.Background())
}
