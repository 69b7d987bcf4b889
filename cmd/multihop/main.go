package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/longregen/multihop/internal/config"
	"github.com/longregen/multihop/internal/llm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "multihop",
		Short: "Multi-hop retrieval question answering CLI",
		Long: `Multihop answers questions that require chaining facts from
several passages. Each hop generates a search query, retrieves
passages, and feeds the accumulated context into the next hop.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			llmClient = llm.NewClient(
				cfg.LLM.URL,
				cfg.LLM.APIKey,
				cfg.LLM.Model,
				cfg.LLM.MaxTokens,
				cfg.LLM.Temperature,
			)

			return nil
		},
	}

	rootCmd.AddCommand(
		answerCmd(),
		evaluateCmd(),
		compileCmd(),
		serveCmd(),
		ingestCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows current configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("LLM:")
			fmt.Printf("  URL:         %s\n", cfg.LLM.URL)
			fmt.Printf("  Model:       %s\n", cfg.LLM.Model)
			fmt.Printf("  Max Tokens:  %d\n", cfg.LLM.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.LLM.Temperature)
			fmt.Printf("  API Key:     %s\n", maskSecret(cfg.LLM.APIKey))
			fmt.Println()

			fmt.Println("Retriever:")
			fmt.Printf("  Backend: %s\n", cfg.Retriever.Backend)
			fmt.Printf("  URL:     %s\n", cfg.Retriever.URL)
			fmt.Printf("  API Key: %s\n", maskSecret(cfg.Retriever.APIKey))
			fmt.Println()

			fmt.Println("Embedding:")
			fmt.Printf("  URL:        %s\n", cfg.Embedding.URL)
			fmt.Printf("  Model:      %s\n", cfg.Embedding.Model)
			fmt.Printf("  Dimensions: %d\n", cfg.Embedding.Dimensions)
			fmt.Printf("  API Key:    %s\n", maskSecret(cfg.Embedding.APIKey))
			fmt.Printf("  Status:     %s\n", boolStatus(cfg.IsPgvectorConfigured()))
			fmt.Println()

			fmt.Println("Database:")
			fmt.Printf("  PostgreSQL:    %s\n", maskSecret(cfg.Database.PostgresURL))
			fmt.Printf("  Passage Table: %s\n", cfg.Database.PassageTable)
			fmt.Println()

			fmt.Println("Pipeline:")
			fmt.Printf("  Max Hops:         %d\n", cfg.Pipeline.MaxHops)
			fmt.Printf("  Passages Per Hop: %d\n", cfg.Pipeline.PassagesPerHop)
			fmt.Println()

			fmt.Println("Evaluation:")
			fmt.Printf("  Workers:    %d\n", cfg.Evaluation.Workers)
			fmt.Printf("  Queue Size: %d\n", cfg.Evaluation.QueueSize)
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  MULTIHOP_LLM_URL, MULTIHOP_LLM_API_KEY, MULTIHOP_LLM_MODEL")
			fmt.Println("  MULTIHOP_RETRIEVER_BACKEND, MULTIHOP_RETRIEVER_URL, MULTIHOP_RETRIEVER_API_KEY")
			fmt.Println("  MULTIHOP_EMBEDDING_URL, MULTIHOP_EMBEDDING_API_KEY, MULTIHOP_EMBEDDING_MODEL")
			fmt.Println("  MULTIHOP_POSTGRES_URL, MULTIHOP_PASSAGE_TABLE")
			fmt.Println("  MULTIHOP_MAX_HOPS, MULTIHOP_PASSAGES_PER_HOP")
			fmt.Println("  MULTIHOP_SERVER_HOST, MULTIHOP_SERVER_PORT")

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("multihop %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
