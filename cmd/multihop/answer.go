package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// answerCmd runs a single question through the multi-hop pipeline
func answerCmd() *cobra.Command {
	var showContext bool

	cmd := &cobra.Command{
		Use:   "answer [question]",
		Short: "Answer a question using multi-hop retrieval",
		Long: `Answer a question by chaining retrieval hops. Each hop generates
a search query from the question and the passages gathered so far,
then retrieves more passages before the final answer is produced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			question := strings.Join(args, " ")

			orch, cleanup, err := buildPipeline(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := orch.Run(ctx, question)
			if err != nil {
				return fmt.Errorf("pipeline run failed: %w", err)
			}

			fmt.Printf("Answer: %s\n", result.Answer)
			fmt.Println()
			fmt.Println("Hop queries:")
			for i, q := range result.HopQueries {
				fmt.Printf("  %d. %s\n", i+1, q)
			}
			if showContext {
				fmt.Println()
				fmt.Printf("Context (%d passages):\n", len(result.Context))
				for i, p := range result.Context {
					fmt.Printf("  [%d] %s\n", i+1, p)
				}
			}
			fmt.Println()
			fmt.Printf("Run %s completed in %s\n", result.ID, time.Duration(result.Duration)*time.Millisecond)

			return nil
		},
	}

	cmd.Flags().BoolVar(&showContext, "context", false, "Print the retrieved passages")

	return cmd
}
