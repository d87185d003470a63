// Package practiceresult implements the append-only practice-result
// repository using PostgreSQL.
package practiceresult

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vodexapp/vodex-backend/internal/adapter/postgres"
	"github.com/vodexapp/vodex-backend/internal/domain"
)

// Repo provides practice-result persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new practice-result repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const resultColumns = `id, session_id, vocab_id, practice_type, grade, user_answer,
       correct_answer, response_time_ms, xp_gained, stability_before, stability_after,
       difficulty_before, difficulty_after, order_index, answered_at`

const createSQL = `
INSERT INTO practice_results (id, session_id, vocab_id, practice_type, grade, user_answer,
                              correct_answer, response_time_ms, xp_gained, stability_before,
                              stability_after, difficulty_before, difficulty_after,
                              order_index, answered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
RETURNING ` + resultColumns

const listBySessionSQL = `
SELECT ` + resultColumns + `
FROM practice_results
WHERE session_id = $1
ORDER BY order_index ASC`

const aggregateBySessionSQL = `
SELECT count(*),
       COALESCE(SUM(xp_gained), 0),
       count(*) FILTER (WHERE grade = 1),
       count(*) FILTER (WHERE grade = 2),
       count(*) FILTER (WHERE grade = 3),
       count(*) FILTER (WHERE grade = 4),
       AVG(response_time_ms) FILTER (WHERE response_time_ms > 0)
FROM practice_results
WHERE session_id = $1`

// Create appends one result row. The unique (session_id, vocab_id,
// order_index) index rejects duplicate submissions of the same exercise,
// surfaced as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, result *domain.PracticeResult) (*domain.PracticeResult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		result.ID, result.SessionID, result.VocabID,
		result.PracticeType.String(), int(result.Grade),
		result.UserAnswer, result.CorrectAnswer, result.ResponseTimeMs, result.XPGained,
		result.StabilityBefore, result.StabilityAfter,
		result.DifficultyBefore, result.DifficultyAfter,
		result.Order, result.AnsweredAt,
	)
	persisted, err := scanResult(row)
	if err != nil {
		return nil, mapError(err, "result", result.ID)
	}

	return persisted, nil
}

// ListBySession returns the session's results ordered by exercise position.
func (r *Repo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listBySessionSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []*domain.PracticeResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return results, nil
}

// AggregateBySession computes the session summary in SQL over the immutable
// result rows. Zero rows yield a zero aggregation, not an error.
func (r *Repo) AggregateBySession(ctx context.Context, sessionID uuid.UUID) (domain.ResultAggregation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var agg domain.ResultAggregation
	err := querier.QueryRow(ctx, aggregateBySessionSQL, sessionID).Scan(
		&agg.Count, &agg.TotalXP,
		&agg.AgainCount, &agg.HardCount, &agg.GoodCount, &agg.EasyCount,
		&agg.AvgResponseMs,
	)
	if err != nil {
		return domain.ResultAggregation{}, fmt.Errorf("aggregate results: %w", err)
	}

	return agg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*domain.PracticeResult, error) {
	var (
		res          domain.PracticeResult
		practiceType string
		grade        int
	)

	err := row.Scan(
		&res.ID, &res.SessionID, &res.VocabID, &practiceType, &grade,
		&res.UserAnswer, &res.CorrectAnswer, &res.ResponseTimeMs, &res.XPGained,
		&res.StabilityBefore, &res.StabilityAfter,
		&res.DifficultyBefore, &res.DifficultyAfter,
		&res.Order, &res.AnsweredAt,
	)
	if err != nil {
		return nil, err
	}

	res.PracticeType = domain.PracticeType(practiceType)
	res.Grade = domain.Grade(grade)

	return &res, nil
}

// mapError converts pgx/pgconn errors to domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
