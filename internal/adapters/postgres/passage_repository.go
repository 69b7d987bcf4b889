package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/longregen/multihop/internal/domain"
	"github.com/longregen/multihop/internal/domain/models"
)

// PassageRepository stores and searches passages by embedding similarity.
type PassageRepository struct {
	BaseRepository
	table string
}

func NewPassageRepository(pool *pgxpool.Pool, table string) *PassageRepository {
	if table == "" {
		table = "multihop_passages"
	}
	return &PassageRepository{
		BaseRepository: NewBaseRepository(pool),
		table:          table,
	}
}

func (r *PassageRepository) Create(ctx context.Context, passage *models.Passage) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var embedding *pgvector.Vector
	if len(passage.Embedding) > 0 {
		v := pgvector.NewVector(passage.Embedding)
		embedding = &v
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, body, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5)`, r.table)

	_, err := r.conn(ctx).Exec(ctx, query,
		passage.ID,
		passage.Title,
		passage.Body,
		embedding,
		passage.CreatedAt,
	)
	return err
}

func (r *PassageRepository) GetByID(ctx context.Context, id string) (*models.Passage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, title, body, created_at
		FROM %s
		WHERE id = $1`, r.table)

	var p models.Passage
	err := r.conn(ctx).QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt)
	if err != nil {
		if checkNoRows(err) {
			return nil, domain.NewDomainError(domain.ErrNotFound, fmt.Sprintf("passage %s not found", id))
		}
		return nil, err
	}
	return &p, nil
}

// SearchSimilar returns the k passages closest to the embedding by cosine
// distance, best match first.
func (r *PassageRepository) SearchSimilar(ctx context.Context, embedding []float32, k int) ([]*models.Passage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, title, body, created_at
		FROM %s
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`, r.table)

	rows, err := r.conn(ctx).Query(ctx, query, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passages []*models.Passage
	for rows.Next() {
		var p models.Passage
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		passages = append(passages, &p)
	}
	return passages, rows.Err()
}

func (r *PassageRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)
	err := r.conn(ctx).QueryRow(ctx, query).Scan(&count)
	return count, err
}
