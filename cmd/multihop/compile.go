package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/longregen/multihop/internal/dataset"
	"github.com/longregen/multihop/internal/pipeline"
)

// compileCmd optimizes the answer generation prompt with GEPA
func compileCmd() *cobra.Command {
	var (
		datasetPath string
		generations int
		population  int
		minibatch   int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Optimize the answer prompt against a training dataset",
		Long: `Run GEPA prompt optimization over the answer generation module.
The dataset provides question/answer pairs; candidates are scored by
normalized exact match against the gold answers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := dataset.LoadFile(datasetPath)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			compileCfg := pipeline.DefaultCompileConfig()
			if generations > 0 {
				compileCfg.MaxGenerations = generations
			}
			if population > 0 {
				compileCfg.PopulationSize = population
			}
			if minibatch > 0 {
				compileCfg.MinibatchSize = minibatch
			}
			if concurrency > 0 {
				compileCfg.Concurrency = concurrency
			}

			module := pipeline.NewAnswerModule()

			fmt.Printf("Compiling answer module over %d examples (%d generations, population %d)...\n",
				ds.Len(), compileCfg.MaxGenerations, compileCfg.PopulationSize)

			result, err := pipeline.CompileAnswerModule(ctx, module, llmClient, llmClient, ds, cfg.LLM.Model, compileCfg)
			if err != nil {
				return fmt.Errorf("compilation failed: %w", err)
			}

			fmt.Println()
			fmt.Printf("Best score: %.4f\n", result.BestScore)
			fmt.Printf("Pareto archive size: %d\n", result.ArchiveSize)
			fmt.Println()
			fmt.Println("Best instruction:")
			fmt.Println(result.BestInstruction)

			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the training dataset JSON file (required)")
	cmd.Flags().IntVar(&generations, "generations", 0, "Number of GEPA generations (0 uses the default)")
	cmd.Flags().IntVar(&population, "population", 0, "Population size (0 uses the default)")
	cmd.Flags().IntVar(&minibatch, "minibatch", 0, "Evaluation minibatch size (0 uses the default)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent evaluations (0 uses the default)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
