package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/longregen/multihop/internal/adapters/metrics"
	"github.com/longregen/multihop/internal/adapters/postgres"
	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/ports"
)

// PgvectorRetriever embeds the query and searches a pgvector-backed
// passage table by cosine distance.
type PgvectorRetriever struct {
	passages  *postgres.PassageRepository
	embedding ports.EmbeddingService
}

func NewPgvectorRetriever(passages *postgres.PassageRepository, embedding ports.EmbeddingService) *PgvectorRetriever {
	return &PgvectorRetriever{
		passages:  passages,
		embedding: embedding,
	}
}

// Retrieve returns up to k passages for the query, best match first, each
// formatted as "<title> | <body>".
func (r *PgvectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	if k < 1 {
		return nil, domain.NewDomainError(domain.ErrInvalidPassageCount, fmt.Sprintf("k must be positive, got %d", k))
	}

	embedded, err := r.embedding.Embed(ctx, query)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrEmbeddingsFailed, fmt.Sprintf("failed to embed query: %v", err))
	}

	start := time.Now()
	rows, err := r.passages.SearchSimilar(ctx, embedded.Embedding, k)
	metrics.RetrievalDuration.WithLabelValues("pgvector").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("pgvector", "error").Inc()
		return nil, domain.NewDomainError(domain.ErrRetrieverUnavailable, err.Error())
	}
	metrics.RetrievalRequestsTotal.WithLabelValues("pgvector", "ok").Inc()

	passages := make([]string, 0, len(rows))
	for _, p := range rows {
		passages = append(passages, p.Formatted())
	}
	return passages, nil
}
