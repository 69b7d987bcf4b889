package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/longregen/multihop/internal/domain"
)

// joinContext renders accumulated passages as a single prompt block.
// An empty context becomes "N/A" so the model sees an explicit marker
// rather than an empty field.
func joinContext(passages []string) string {
	if len(passages) == 0 {
		return "N/A"
	}
	return strings.Join(passages, "\n")
}

func stringOutput(outputs map[string]any, key string) (string, error) {
	raw, ok := outputs[key]
	if !ok {
		return "", domain.NewDomainError(domain.ErrMalformedOutput, fmt.Sprintf("missing %q in module output", key))
	}
	s, ok := raw.(string)
	if !ok {
		return "", domain.NewDomainError(domain.ErrMalformedOutput, fmt.Sprintf("%q is not a string", key))
	}
	return strings.TrimSpace(s), nil
}

// QueryModule generates one search query per invocation. Each hop slot of
// the orchestrator owns its own instance so the slots can specialize
// independently during compilation.
type QueryModule struct {
	predict *TracedPredict
}

func NewQueryModule(opts ...Option) *QueryModule {
	return &QueryModule{
		predict: NewTracedPredict(QueryGeneration, opts...),
	}
}

func (m *QueryModule) GenerateQuery(ctx context.Context, passages []string, question string) (string, error) {
	outputs, err := m.predict.Process(ctx, map[string]any{
		"context":  joinContext(passages),
		"question": question,
	})
	if err != nil {
		return "", err
	}
	return stringOutput(outputs, "query")
}

// Predict exposes the underlying module for compilation
func (m *QueryModule) Predict() *TracedPredict {
	return m.predict
}

// AnswerModule generates the final answer from the accumulated context.
type AnswerModule struct {
	predict *TracedPredict
}

func NewAnswerModule(opts ...Option) *AnswerModule {
	return &AnswerModule{
		predict: NewTracedPredict(AnswerGeneration, opts...),
	}
}

func (m *AnswerModule) GenerateAnswer(ctx context.Context, passages []string, question string) (string, error) {
	outputs, err := m.predict.Process(ctx, map[string]any{
		"context":  joinContext(passages),
		"question": question,
	})
	if err != nil {
		return "", err
	}
	return stringOutput(outputs, "answer")
}

// Predict exposes the underlying module for compilation
func (m *AnswerModule) Predict() *TracedPredict {
	return m.predict
}
