// Package practicesession implements the practice-session repository using
// PostgreSQL.
package practicesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vodexapp/vodex-backend/internal/adapter/postgres"
	"github.com/vodexapp/vodex-backend/internal/domain"
)

// Repo provides practice-session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new practice-session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sessionColumns = `id, user_id, space_id, target_count, started_at, finished_at,
       completed_count, total_xp`

const createSQL = `
INSERT INTO practice_sessions (id, user_id, space_id, target_count, started_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + sessionColumns

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM practice_sessions
WHERE id = $1 AND user_id = $2`

const incrementProgressSQL = `
UPDATE practice_sessions
SET completed_count = completed_count + 1, total_xp = total_xp + $3
WHERE id = $1 AND user_id = $2 AND finished_at IS NULL`

const finishSQL = `
UPDATE practice_sessions
SET finished_at = COALESCE(finished_at, $3)
WHERE id = $1 AND user_id = $2
RETURNING ` + sessionColumns

// Create inserts a new session.
func (r *Repo) Create(ctx context.Context, session *domain.PracticeSession) (*domain.PracticeSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		session.ID, session.UserID, session.SpaceID, session.TargetCount, session.StartedAt)
	persisted, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", session.ID)
	}

	return persisted, nil
}

// GetByID returns a session by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, sessionID, userID)
	session, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", sessionID)
	}

	return session, nil
}

// IncrementProgress bumps the completed counter and total XP atomically.
// A finished session is never incremented; that case surfaces as
// domain.ErrConflict.
func (r *Repo) IncrementProgress(ctx context.Context, userID, sessionID uuid.UUID, xpDelta int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, incrementProgressSQL, sessionID, userID, xpDelta)
	if err != nil {
		return mapError(err, "session", sessionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrConflict)
	}

	return nil
}

// Finish stamps finished_at once; repeat calls keep the original timestamp.
func (r *Repo) Finish(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, finishSQL, sessionID, userID, time.Now().UTC())
	session, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, "session", sessionID)
	}

	return session, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.PracticeSession, error) {
	var s domain.PracticeSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.SpaceID, &s.TargetCount,
		&s.StartedAt, &s.FinishedAt, &s.CompletedCount, &s.TotalXP,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
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
