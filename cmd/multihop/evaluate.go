package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/longregen/multihop/internal/dataset"
	"github.com/longregen/multihop/internal/evaluation"
	"github.com/longregen/multihop/internal/pipeline"
)

// evaluateCmd runs the pipeline over a benchmark dataset
func evaluateCmd() *cobra.Command {
	var (
		datasetPath string
		metricName  string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the pipeline against a benchmark dataset",
		Long: `Run every example of a dataset through the pipeline and score the
results with an acceptance metric.

Metrics:
  answer_and_hops   Answer matches gold, is grounded in the retrieved
                    context, and hop queries are short and non-repetitive
  gold_passages     All gold passage titles appear in the retrieved context`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := dataset.LoadFile(datasetPath)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			var metric pipeline.AcceptanceMetric
			switch metricName {
			case "answer_and_hops":
				metric = pipeline.NewAnswerAndHopsMetric()
			case "gold_passages":
				metric = pipeline.NewGoldPassagesMetric()
			default:
				return fmt.Errorf("unknown metric %q (want answer_and_hops or gold_passages)", metricName)
			}

			orch, cleanup, err := buildPipeline(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if workers < 1 {
				workers = cfg.Evaluation.Workers
			}
			harness, err := evaluation.NewHarness(orch, metric, workers, cfg.Evaluation.QueueSize)
			if err != nil {
				return err
			}

			fmt.Printf("Evaluating %d examples with metric %s (%d workers)...\n", ds.Len(), metric.Name(), workers)
			start := time.Now()

			report, err := harness.Evaluate(ctx, ds)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			fmt.Println()
			fmt.Printf("Passed:  %d\n", report.Passed)
			fmt.Printf("Failed:  %d\n", report.Failed)
			fmt.Printf("Errored: %d\n", report.Errored)
			fmt.Printf("Score:   %.4f\n", report.Score)
			fmt.Printf("Took:    %s\n", time.Since(start).Round(time.Millisecond))

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the dataset JSON file (required)")
	cmd.Flags().StringVar(&metricName, "metric", "answer_and_hops", "Acceptance metric to apply")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent pipeline runs (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
