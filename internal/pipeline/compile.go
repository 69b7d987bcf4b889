package pipeline

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/optimizers"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/ports"
)

// CompileConfig controls the GEPA optimization of the answer module.
type CompileConfig struct {
	MaxGenerations int
	PopulationSize int
	MinibatchSize  int
	Concurrency    int
}

func DefaultCompileConfig() CompileConfig {
	return CompileConfig{
		MaxGenerations: 5,
		PopulationSize: 20,
		MinibatchSize:  8,
		Concurrency:    3,
	}
}

// CompileResult summarizes one optimization run.
type CompileResult struct {
	BestInstruction string
	BestScore       float64
	ArchiveSize     int
}

// CompileAnswerModule evolves the answer module's instruction with GEPA
// against a benchmark dataset, scored by normalized answer match. The
// module is optimized in place; the result reports the winning candidate.
func CompileAnswerModule(ctx context.Context, module *AnswerModule, llm ports.LLMService, reflectionLM ports.LLMService, dataset ports.Dataset, modelID string, cfg CompileConfig) (*CompileResult, error) {
	if dataset == nil || dataset.Len() == 0 {
		return nil, domain.NewDomainError(domain.ErrEmptyDataset, "compilation requires a non-empty dataset")
	}

	adapter := NewLLMServiceAdapter(llm, modelID)
	core.SetDefaultLLM(adapter)

	// A stronger model can drive GEPA's reflection step
	if reflectionLM != nil {
		core.GlobalConfig.TeacherLLM = NewLLMServiceAdapter(reflectionLM, modelID)
	}

	program := module.Predict().ToProgram(AnswerGeneration.Name)
	ds := NewDatasetAdapter(dataset)

	gepaConfig := &optimizers.GEPAConfig{
		MaxGenerations:       cfg.MaxGenerations,
		PopulationSize:       cfg.PopulationSize,
		MutationRate:         0.3,
		CrossoverRate:        0.7,
		ElitismRate:          0.1,
		ReflectionFreq:       2,
		ReflectionDepth:      3,
		SelfCritiqueTemp:     0.7,
		TournamentSize:       3,
		SelectionStrategy:    "adaptive_pareto",
		ConvergenceThreshold: 0.01,
		StagnationLimit:      3,
		EvaluationBatchSize:  cfg.MinibatchSize,
		ConcurrencyLevel:     cfg.Concurrency,
		Temperature:          0.8,
		MaxTokens:            500,
	}
	if gepaConfig.MaxGenerations < 1 {
		gepaConfig.MaxGenerations = 1
	}

	optimizer, err := optimizers.NewGEPA(gepaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GEPA optimizer: %w", err)
	}

	if _, err := optimizer.Compile(ctx, program, ds, AnswerMatchMetric); err != nil {
		return nil, fmt.Errorf("GEPA optimization failed: %w", err)
	}

	result := &CompileResult{}
	if state := optimizer.GetOptimizationState(); state != nil {
		if state.BestCandidate != nil {
			result.BestInstruction = state.BestCandidate.Instruction
			result.BestScore = state.BestCandidate.Fitness
		}
		result.ArchiveSize = len(state.GetParetoArchive())
	}
	return result, nil
}
