package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/longregen/multihop/internal/adapters/embedding"
	"github.com/longregen/multihop/internal/adapters/id"
	"github.com/longregen/multihop/internal/adapters/postgres"
	"github.com/longregen/multihop/internal/adapters/retrieval"
	"github.com/longregen/multihop/internal/config"
	"github.com/longregen/multihop/internal/llm"
	"github.com/longregen/multihop/internal/pipeline"
	"github.com/longregen/multihop/internal/ports"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Shared global variables
var (
	cfg       *config.Config
	llmClient *llm.Client
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// initDB initializes a database connection pool for CLI commands
func initDB(ctx context.Context) (*pgxpool.Pool, error) {
	if cfg.Database.PostgresURL == "" {
		return nil, fmt.Errorf("PostgreSQL connection required. Set MULTIHOP_POSTGRES_URL")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return pool, nil
}

// buildRetriever creates the retrieval backend selected in the config.
// The returned cleanup function releases the database pool for the
// pgvector backend and is a no-op for the http backend.
func buildRetriever(ctx context.Context) (ports.PassageRetriever, func(), error) {
	switch cfg.Retriever.Backend {
	case config.BackendHTTP:
		if cfg.Retriever.URL == "" {
			return nil, nil, fmt.Errorf("http retriever requires MULTIHOP_RETRIEVER_URL")
		}
		return retrieval.NewHTTPRetriever(cfg.Retriever.URL, cfg.Retriever.APIKey), func() {}, nil

	case config.BackendPgvector:
		if !cfg.IsPgvectorConfigured() {
			return nil, nil, fmt.Errorf("pgvector retriever requires MULTIHOP_POSTGRES_URL and MULTIHOP_EMBEDDING_URL")
		}
		pool, err := initDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		passageRepo := postgres.NewPassageRepository(pool, cfg.Database.PassageTable)
		embeddingClient := embedding.NewClient(
			cfg.Embedding.URL,
			cfg.Embedding.APIKey,
			cfg.Embedding.Model,
			cfg.Embedding.Dimensions,
		)
		return retrieval.NewPgvectorRetriever(passageRepo, embeddingClient), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown retriever backend %q", cfg.Retriever.Backend)
	}
}

// buildPipeline assembles the full multi-hop orchestrator. Each hop
// gets its own query module so their prompts can diverge under
// optimization.
func buildPipeline(ctx context.Context) (*pipeline.Orchestrator, func(), error) {
	core.SetDefaultLLM(pipeline.NewLLMServiceAdapter(llmClient, cfg.LLM.Model))

	retriever, cleanup, err := buildRetriever(ctx)
	if err != nil {
		return nil, nil, err
	}

	queryGens := make([]ports.QueryGenerator, cfg.Pipeline.MaxHops)
	for i := range queryGens {
		queryGens[i] = pipeline.NewQueryModule()
	}
	answerGen := pipeline.NewAnswerModule()

	orch, err := pipeline.NewOrchestrator(queryGens, retriever, answerGen, cfg.Pipeline.PassagesPerHop, id.New())
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return orch, cleanup, nil
}

// maskSecret masks a secret string for display
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// boolStatus returns a status string for a boolean
func boolStatus(b bool) string {
	if b {
		return "configured"
	}
	return "not configured"
}
