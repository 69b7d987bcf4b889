package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/longregen/multihop/internal/adapters/embedding"
	"github.com/longregen/multihop/internal/adapters/id"
	"github.com/longregen/multihop/internal/adapters/postgres"
	"github.com/longregen/multihop/internal/domain/models"
)

type ingestPassage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ingestCmd loads a passage corpus into the pgvector backend
func ingestCmd() *cobra.Command {
	var (
		filePath  string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load a passage corpus into the pgvector backend",
		Long: `Read a JSON array of {"title", "body"} passages, embed the bodies
via the configured embedding service, and store them in PostgreSQL.
Each batch is written in a single transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !cfg.IsPgvectorConfigured() {
				return fmt.Errorf("ingest requires MULTIHOP_POSTGRES_URL and MULTIHOP_EMBEDDING_URL")
			}

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read corpus file: %w", err)
			}
			var passages []ingestPassage
			if err := json.Unmarshal(data, &passages); err != nil {
				return fmt.Errorf("failed to parse corpus file: %w", err)
			}
			if len(passages) == 0 {
				return fmt.Errorf("corpus file contains no passages")
			}

			pool, err := initDB(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := postgres.NewPassageRepository(pool, cfg.Database.PassageTable)
			txManager := postgres.NewTransactionManager(pool)
			embeddingClient := embedding.NewClient(
				cfg.Embedding.URL,
				cfg.Embedding.APIKey,
				cfg.Embedding.Model,
				cfg.Embedding.Dimensions,
			)
			idGen := id.New()

			fmt.Printf("Ingesting %d passages into %s (batch size %d)...\n",
				len(passages), cfg.Database.PassageTable, batchSize)
			start := time.Now()

			stored := 0
			for offset := 0; offset < len(passages); offset += batchSize {
				end := offset + batchSize
				if end > len(passages) {
					end = len(passages)
				}
				batch := passages[offset:end]

				if err := ingestBatch(ctx, txManager, repo, embeddingClient, idGen, batch); err != nil {
					return fmt.Errorf("batch at offset %d failed: %w", offset, err)
				}
				stored += len(batch)
				fmt.Printf("  %d/%d\n", stored, len(passages))
			}

			fmt.Printf("Done: %d passages in %s\n", stored, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to the corpus JSON file (required)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 32, "Passages embedded and stored per transaction")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func ingestBatch(
	ctx context.Context,
	txManager *postgres.TransactionManager,
	repo *postgres.PassageRepository,
	embeddingClient *embedding.Client,
	idGen *id.Generator,
	batch []ingestPassage,
) error {
	texts := make([]string, len(batch))
	for i, p := range batch {
		texts[i] = p.Body
	}

	results, err := embeddingClient.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if len(results) != len(batch) {
		return fmt.Errorf("embedding returned %d vectors for %d passages", len(results), len(batch))
	}

	return txManager.WithTransaction(ctx, func(ctx context.Context) error {
		for i, p := range batch {
			passage := &models.Passage{
				ID:        idGen.GeneratePassageID(),
				Title:     p.Title,
				Body:      p.Body,
				Embedding: results[i].Embedding,
			}
			if err := repo.Create(ctx, passage); err != nil {
				return err
			}
		}
		return nil
	})
}
