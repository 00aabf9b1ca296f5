package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dahcoins/application"
	"dahcoins/config"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxKeys         = 10000
)

// Server exposes the economy over HTTP
type Server struct {
	handler     application.EconomyHandler
	router      *mux.Router
	limiter     *RateLimiter
	httpServer  *http.Server
	stopCleanup chan struct{}
}

// NewServer creates a new HTTP server for handler
func NewServer(cfg *config.Config, handler application.EconomyHandler) *Server {
	s := &Server{
		handler:     handler,
		limiter:     NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		stopCleanup: make(chan struct{}),
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.limiter.StartCleanup(limiterCleanupInterval, limiterMaxKeys, s.stopCleanup)

	log.Infof("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.stopCleanup)
	return s.httpServer.Shutdown(ctx)
}
