package ports

import (
	"context"

	"github.com/longregen/multihop/internal/domain/models"
)

// LLMMessage represents a message in the LLM conversation context
type LLMMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMResponse represents a response from the LLM
type LLMResponse struct {
	Content   string `json:"content,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// LLMService defines the interface for LLM interactions
type LLMService interface {
	Chat(ctx context.Context, messages []LLMMessage) (*LLMResponse, error)
}

// EmbeddingResult represents the result of embedding generation
type EmbeddingResult struct {
	Embedding  []float32 `json:"embedding"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
}

// EmbeddingService defines the interface for generating embeddings
type EmbeddingService interface {
	Embed(ctx context.Context, text string) (*EmbeddingResult, error)
	EmbedBatch(ctx context.Context, texts []string) ([]*EmbeddingResult, error)
	GetDimensions() int
}

// QueryGenerator produces a search query from the accumulated context and
// the original question. The orchestrator holds one independent instance
// per hop so each hop slot can specialize.
type QueryGenerator interface {
	GenerateQuery(ctx context.Context, passages []string, question string) (string, error)
}

// AnswerGenerator produces the final answer from the accumulated context
// and the original question.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, passages []string, question string) (string, error)
}

// PassageRetriever returns up to k passages for a query, best match first.
// Each passage is formatted as "<title> | <body text>".
type PassageRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]string, error)
}

// PipelineRunner runs the full multi-hop pipeline for one question.
type PipelineRunner interface {
	Run(ctx context.Context, question string) (*models.RunResult, error)
}

// Dataset yields benchmark examples in order. Next returns false once the
// sequence is exhausted; Reset rewinds to the beginning.
type Dataset interface {
	Next() (models.Example, bool)
	Reset()
	Len() int
}

// IDGenerator produces identifiers for runs and related records
type IDGenerator interface {
	GenerateRunID() string
	GenerateExampleID() string
}
