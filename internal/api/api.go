// Package api implements the HTTP surface of the foodgram service: the
// public recipe API, the operational endpoints (health, metrics), and the
// admin group.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Barty-sim/foodgram-project-react/internal/config"
	"github.com/Barty-sim/foodgram-project-react/internal/security"
	"github.com/Barty-sim/foodgram-project-react/internal/storage/sqlite"
)

// Server is the HTTP front end. It owns the listener and the route table and
// delegates all persistence to the store.
type Server struct {
	cfg       *config.Config
	store     *sqlite.Store
	logger    *slog.Logger
	metrics   *Metrics
	limiter   *security.RateLimiter
	media     *MediaStore
	server    *http.Server
	startedAt time.Time
}

// New assembles a Server from its dependencies.
func New(cfg *config.Config, store *sqlite.Store, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: NewMetrics(prometheus.DefaultRegisterer),
		limiter: security.NewRateLimiter(cfg.Auth.LoginPerMin, time.Minute),
		media:   NewMediaStore(cfg.Media.Root, cfg.Media.MaxBytes),
	}
}

// Start binds the listener and serves in a goroutine.
func (s *Server) Start() error {
	s.startedAt = time.Now()

	s.server = &http.Server{
		Addr:         s.cfg.Server.Bind,
		Handler:      s.buildRouter(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", s.cfg.Server.Bind)
	if err != nil {
		return fmt.Errorf("api: listen failed: %w", err)
	}

	go func() {
		s.logger.Info("api listening", "addr", s.cfg.Server.Bind)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api serve error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully within the configured timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("api shutting down")
	return s.server.Shutdown(shutdownCtx)
}
