package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/ports"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) (*ports.EmbeddingResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.EmbeddingResult{Embedding: []float32{0.1, 0.2}, Dimensions: 2}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]*ports.EmbeddingResult, error) {
	return nil, s.err
}

func (s *stubEmbedder) GetDimensions() int { return 2 }

func TestPgvectorRetriever_InvalidK(t *testing.T) {
	retriever := NewPgvectorRetriever(nil, &stubEmbedder{})
	_, err := retriever.Retrieve(context.Background(), "q", -1)

	if !errors.Is(err, domain.ErrInvalidPassageCount) {
		t.Fatalf("expected ErrInvalidPassageCount, got %v", err)
	}
}

func TestPgvectorRetriever_EmbeddingFailure(t *testing.T) {
	retriever := NewPgvectorRetriever(nil, &stubEmbedder{err: errors.New("embedding service down")})
	_, err := retriever.Retrieve(context.Background(), "q", 3)

	if !errors.Is(err, domain.ErrEmbeddingsFailed) {
		t.Fatalf("expected ErrEmbeddingsFailed, got %v", err)
	}
}
