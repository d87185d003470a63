// Package vocab implements the read-only vocabulary catalog repository
// using PostgreSQL.
package vocab

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vodexapp/vodex-backend/internal/adapter/postgres"
	"github.com/vodexapp/vodex-backend/internal/domain"
)

// Repo provides vocabulary lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocab repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDsSQL = `
SELECT id, space_id, word, translation, COALESCE(example, ''),
       COALESCE(image_url, ''), COALESCE(audio_url, '')
FROM vocab
WHERE space_id = $1 AND id = ANY($2::uuid[])`

// GetByIDs returns the vocab rows for the given ids within a space. Missing
// ids are silently absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Vocab, error) {
	if len(ids) == 0 {
		return []domain.Vocab{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByIDsSQL, spaceID, ids)
	if err != nil {
		return nil, fmt.Errorf("get vocab by ids: %w", err)
	}
	defer rows.Close()

	var vocabs []domain.Vocab
	for rows.Next() {
		var v domain.Vocab
		if err := rows.Scan(&v.ID, &v.SpaceID, &v.Word, &v.Translation, &v.Example, &v.ImageURL, &v.AudioURL); err != nil {
			return nil, fmt.Errorf("scan vocab: %w", err)
		}
		vocabs = append(vocabs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocab: %w", err)
	}

	return vocabs, nil
}
