package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aquaflow/internal/config"
)

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func New(cfg config.ServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       3 * cfg.ReadTimeout,
			ErrorLog:          zap.NewStdLog(logger.With(zap.String("component", "http"))),
		},
		logger: logger,
	}
}

// Start blocks until the listener fails or Shutdown is called. A clean
// shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	start := time.Now()
	s.logger.Info("shutting down server")
	err := s.httpServer.Shutdown(ctx)
	s.logger.Info("server drained", zap.Duration("took", time.Since(start)))
	return err
}
