package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/longregen/multihop/internal/adapters/tracing"
	"github.com/longregen/multihop/internal/api"
)

// serveCmd starts the HTTP API server
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server exposing the multi-hop pipeline.

Endpoints:
  POST /api/v1/answer   Run the pipeline for one question
  GET  /health          Liveness probe
  GET  /metrics         Prometheus metrics

Required configuration:
  - LLM endpoint (MULTIHOP_LLM_URL)
  - Retrieval backend (MULTIHOP_RETRIEVER_URL or MULTIHOP_POSTGRES_URL)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// runServer initializes and starts the HTTP API server
func runServer(ctx context.Context) error {
	logger := newLogger()
	logger.Info("starting multihop api server",
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"llm", cfg.LLM.URL,
		"retriever", cfg.Retriever.Backend,
	)

	shutdownTracer, err := tracing.InitTracer("multihop-api")
	if err != nil {
		logger.Warn("failed to initialize tracing", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(ctx); err != nil {
				logger.Error("error shutting down tracer", "error", err)
			}
		}()
	}

	orch, cleanup, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := api.NewServer(cfg, orch, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig)
	case <-ctx.Done():
		logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
