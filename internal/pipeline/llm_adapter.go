package pipeline

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"

	"github.com/longregen/multihop/internal/ports"
)

// LLMServiceAdapter adapts our LLMService to dspy-go's core.LLM interface.
// Only Generate is implemented: Predict modules and GEPA drive everything
// through plain text generation.
type LLMServiceAdapter struct {
	service ports.LLMService
	modelID string
}

func NewLLMServiceAdapter(service ports.LLMService, modelID string) *LLMServiceAdapter {
	if modelID == "" {
		modelID = "multihop-llm-service"
	}
	return &LLMServiceAdapter{service: service, modelID: modelID}
}

func (a *LLMServiceAdapter) Generate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	messages := []ports.LLMMessage{
		{Role: "user", Content: prompt},
	}

	resp, err := a.service.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("llm service chat failed: %w", err)
	}

	return &core.LLMResponse{
		Content: resp.Content,
	}, nil
}

// The remaining core.LLM methods are not used by Predict or GEPA.

func (a *LLMServiceAdapter) GenerateWithJSON(ctx context.Context, prompt string, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithJSON not implemented")
}

func (a *LLMServiceAdapter) GenerateWithFunctions(ctx context.Context, prompt string, functions []map[string]interface{}, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithFunctions not implemented")
}

// CreateEmbedding is not implemented; embeddings go through
// ports.EmbeddingService instead.
func (a *LLMServiceAdapter) CreateEmbedding(ctx context.Context, input string, opts ...core.EmbeddingOption) (*core.EmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbedding not implemented, use ports.EmbeddingService")
}

func (a *LLMServiceAdapter) CreateEmbeddings(ctx context.Context, inputs []string, opts ...core.EmbeddingOption) (*core.BatchEmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbeddings not implemented, use ports.EmbeddingService")
}

func (a *LLMServiceAdapter) StreamGenerate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerate not implemented")
}

func (a *LLMServiceAdapter) GenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	return nil, fmt.Errorf("GenerateWithContent not implemented")
}

func (a *LLMServiceAdapter) StreamGenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerateWithContent not implemented")
}

func (a *LLMServiceAdapter) ProviderName() string {
	return "multihop"
}

func (a *LLMServiceAdapter) ModelID() string {
	return a.modelID
}

func (a *LLMServiceAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapabilityChat, core.CapabilityCompletion}
}

// DatasetAdapter exposes benchmark examples as a dspy-go core.Dataset of
// question -> answer pairs.
type DatasetAdapter struct {
	dataset ports.Dataset
}

func NewDatasetAdapter(dataset ports.Dataset) *DatasetAdapter {
	return &DatasetAdapter{dataset: dataset}
}

func (d *DatasetAdapter) Next() (core.Example, bool) {
	ex, ok := d.dataset.Next()
	if !ok {
		return core.Example{}, false
	}
	return core.Example{
		Inputs: map[string]interface{}{
			"question": ex.Question,
		},
		Outputs: map[string]interface{}{
			"answer": ex.Answer,
		},
	}, true
}

func (d *DatasetAdapter) Reset() {
	d.dataset.Reset()
}

// AnswerMatchMetric is the core.Metric used during compilation: 1.0 when
// the predicted answer matches the expected answer after normalization,
// 0.0 otherwise.
func AnswerMatchMetric(expected, actual map[string]interface{}) float64 {
	want, _ := expected["answer"].(string)
	got, _ := actual["answer"].(string)
	if want == "" {
		return 0.0
	}
	if NormalizeAnswer(want) == NormalizeAnswer(got) {
		return 1.0
	}
	return 0.0
}
