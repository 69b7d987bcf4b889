// Package api exposes the multi-hop pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/longregen/multihop/internal/config"
	"github.com/longregen/multihop/internal/ports"
)

type Server struct {
	config     *config.Config
	logger     *slog.Logger
	runner     ports.PipelineRunner
	router     *chi.Mux
	httpServer *http.Server
}

func NewServer(cfg *config.Config, runner ports.PipelineRunner, logger *slog.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		runner: runner,
	}

	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(Logger(s.logger))
	r.Use(Recovery(s.logger))
	r.Use(Metrics)

	healthHandler := NewHealthHandler()
	r.Get("/health", healthHandler.Handle)
	r.Get("/health/live", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		answerHandler := NewAnswerHandler(s.runner, s.logger)
		r.Post("/answer", answerHandler.Answer)
	})

	s.router = r
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Info("starting http server", "addr", addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *chi.Mux {
	return s.router
}
