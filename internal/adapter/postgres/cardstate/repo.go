// Package cardstate implements the scheduling-state repository using
// PostgreSQL. The due-card query is built with squirrel; everything else is
// raw SQL.
package cardstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/vodexapp/vodex-backend/internal/adapter/postgres"
	"github.com/vodexapp/vodex-backend/internal/domain"
)

// Repo provides card scheduling-state persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// New creates a new card-state repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const cardColumns = `id, user_id, vocab_id, space_id, state, step, stability, difficulty,
       due, last_review, reps, lapses, scheduled_days, elapsed_days,
       xp, last_practice_type, unlocked_types, created_at, updated_at`

const getSQL = `
SELECT ` + cardColumns + `
FROM card_states
WHERE user_id = $1 AND vocab_id = $2 AND space_id = $3`

const upsertSQL = `
INSERT INTO card_states (id, user_id, vocab_id, space_id, state, step, stability, difficulty,
                         due, last_review, reps, lapses, scheduled_days, elapsed_days,
                         xp, last_practice_type, unlocked_types, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
ON CONFLICT (user_id, vocab_id, space_id) DO UPDATE SET updated_at = card_states.updated_at
RETURNING ` + cardColumns

const updateAfterReviewSQL = `
UPDATE card_states
SET state = $4, step = $5, stability = $6, difficulty = $7, due = $8,
    last_review = $9, reps = $10, lapses = $11, scheduled_days = $12,
    elapsed_days = $13, xp = xp + $14, last_practice_type = $15,
    unlocked_types = $16, updated_at = $17
WHERE user_id = $1 AND vocab_id = $2 AND space_id = $3 AND due = $18
RETURNING ` + cardColumns

const countDueSQL = `
SELECT count(*) FROM card_states
WHERE user_id = $1 AND space_id = $2 AND due <= $3`

const countByStateSQL = `
SELECT state, count(*) FROM card_states
WHERE user_id = $1 AND space_id = $2
GROUP BY state`

const totalXPSQL = `
SELECT COALESCE(SUM(xp), 0) FROM card_states
WHERE user_id = $1 AND space_id = $2`

// Get returns the card state for (user, vocab, space).
func (r *Repo) Get(ctx context.Context, userID, vocabID, spaceID uuid.UUID) (*domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getSQL, userID, vocabID, spaceID)
	card, err := scanCard(row)
	if err != nil {
		return nil, mapError(err, "card", vocabID)
	}

	return card, nil
}

// DueCards returns cards with due <= now, oldest first.
func (r *Repo) DueCards(ctx context.Context, userID, spaceID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error) {
	query, args, err := r.sb.
		Select("id", "user_id", "vocab_id", "space_id", "state", "step", "stability", "difficulty",
			"due", "last_review", "reps", "lapses", "scheduled_days", "elapsed_days",
			"xp", "last_practice_type", "unlocked_types", "created_at", "updated_at").
		From("card_states").
		Where(sq.Eq{"user_id": userID, "space_id": spaceID}).
		Where(sq.LtOrEq{"due": now}).
		OrderBy("due ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build due cards query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("get due cards: %w", err)
	}

	return cards, nil
}

// Upsert inserts the card if absent; an existing row is returned unchanged.
func (r *Repo) Upsert(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, upsertSQL,
		card.ID, card.UserID, card.VocabID, card.SpaceID,
		card.State.String(), card.Step, card.Stability, card.Difficulty,
		card.Due, card.LastReview, card.Reps, card.Lapses,
		card.ScheduledDays, card.ElapsedDays,
		card.XP, practiceTypePtr(card.LastPracticeType), typesToStrings(card.UnlockedTypes),
		now, now,
	)
	persisted, err := scanCard(row)
	if err != nil {
		return nil, mapError(err, "card", card.VocabID)
	}

	return persisted, nil
}

// UpdateAfterReview applies the post-review state. The update is guarded by
// the due date the review was generated against: a concurrent submission
// that already moved the card leaves zero rows, mapped to domain.ErrConflict.
func (r *Repo) UpdateAfterReview(ctx context.Context, userID, vocabID, spaceID uuid.UUID, params domain.CardUpdateParams) (*domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateAfterReviewSQL,
		userID, vocabID, spaceID,
		params.State.String(), params.Step, params.Stability, params.Difficulty, params.Due,
		params.LastReview, params.Reps, params.Lapses, params.ScheduledDays, params.ElapsedDays,
		params.XPDelta, params.LastPracticeType.String(), typesToStrings(params.UnlockedTypes),
		time.Now().UTC(), params.ExpectedDue,
	)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("card %s: %w", vocabID, domain.ErrConflict)
		}
		return nil, mapError(err, "card", vocabID)
	}

	return card, nil
}

// CountDue returns how many cards are due at the given time.
func (r *Repo) CountDue(ctx context.Context, userID, spaceID uuid.UUID, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countDueSQL, userID, spaceID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("count due cards: %w", err)
	}

	return count, nil
}

// CountByState returns card counts per scheduling state.
func (r *Repo) CountByState(ctx context.Context, userID, spaceID uuid.UUID) (domain.CardStatusCounts, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStateSQL, userID, spaceID)
	if err != nil {
		return domain.CardStatusCounts{}, fmt.Errorf("count cards by state: %w", err)
	}
	defer rows.Close()

	var counts domain.CardStatusCounts
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return domain.CardStatusCounts{}, fmt.Errorf("scan state count: %w", err)
		}
		switch domain.CardState(state) {
		case domain.CardStateNew:
			counts.New = count
		case domain.CardStateLearning:
			counts.Learning = count
		case domain.CardStateReview:
			counts.Review = count
		case domain.CardStateRelearning:
			counts.Relearning = count
		}
		counts.Total += count
	}
	if err := rows.Err(); err != nil {
		return domain.CardStatusCounts{}, fmt.Errorf("iterate state counts: %w", err)
	}

	return counts, nil
}

// TotalXP returns the summed XP across the user's cards in the space.
func (r *Repo) TotalXP(ctx context.Context, userID, spaceID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, totalXPSQL, userID, spaceID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum card xp: %w", err)
	}

	return total, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c             domain.Card
		state         string
		lastType      *string
		unlockedTypes []string
	)

	err := row.Scan(
		&c.ID, &c.UserID, &c.VocabID, &c.SpaceID, &state, &c.Step,
		&c.Stability, &c.Difficulty, &c.Due, &c.LastReview,
		&c.Reps, &c.Lapses, &c.ScheduledDays, &c.ElapsedDays,
		&c.XP, &lastType, &unlockedTypes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.State = domain.CardState(state)
	if lastType != nil {
		pt := domain.PracticeType(*lastType)
		c.LastPracticeType = &pt
	}
	c.UnlockedTypes = stringsToTypes(unlockedTypes)

	return &c, nil
}

func scanCards(rows pgx.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

func typesToStrings(types []domain.PracticeType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.String())
	}
	return out
}

func stringsToTypes(raw []string) []domain.PracticeType {
	out := make([]domain.PracticeType, 0, len(raw))
	for _, s := range raw {
		out = append(out, domain.PracticeType(s))
	}
	return out
}

func practiceTypePtr(pt *domain.PracticeType) *string {
	if pt == nil {
		return nil
	}
	s := pt.String()
	return &s
}

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
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
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
