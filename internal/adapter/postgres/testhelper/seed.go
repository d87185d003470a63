package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedVocab inserts a vocabulary row into the given space.
func SeedVocab(t *testing.T, pool *pgxpool.Pool, spaceID uuid.UUID) domain.Vocab {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	v := domain.Vocab{
		ID:          uuid.New(),
		SpaceID:     spaceID,
		Word:        "word-" + suffix,
		Translation: "translation-" + suffix,
		Example:     "An example with word-" + suffix + ".",
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO vocab (id, space_id, word, translation, example)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.SpaceID, v.Word, v.Translation, v.Example,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVocab insert: %v", err)
	}

	return v
}

// SeedCard inserts a card state row for (user, vocab, space) and returns it.
// The card is due one hour in the past so it shows up in due queries.
func SeedCard(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, vocab domain.Vocab) *domain.Card {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	card := domain.NewCard(userID, vocab.ID, vocab.SpaceID, now)
	card.Due = now.Add(-time.Hour)

	unlocked := make([]string, 0, len(card.UnlockedTypes))
	for _, pt := range card.UnlockedTypes {
		unlocked = append(unlocked, pt.String())
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO card_states (id, user_id, vocab_id, space_id, state, step, stability, difficulty,
		                          due, last_review, reps, lapses, scheduled_days, elapsed_days,
		                          xp, last_practice_type, unlocked_types, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		card.ID, card.UserID, card.VocabID, card.SpaceID,
		card.State.String(), card.Step, card.Stability, card.Difficulty,
		card.Due, card.LastReview, card.Reps, card.Lapses,
		card.ScheduledDays, card.ElapsedDays,
		card.XP, nil, unlocked, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCard insert: %v", err)
	}

	return card
}

// SeedSession inserts an open practice session.
func SeedSession(t *testing.T, pool *pgxpool.Pool, userID, spaceID uuid.UUID, targetCount int) *domain.PracticeSession {
	t.Helper()
	ctx := context.Background()

	s := &domain.PracticeSession{
		ID:          uuid.New(),
		UserID:      userID,
		SpaceID:     spaceID,
		TargetCount: targetCount,
		StartedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO practice_sessions (id, user_id, space_id, target_count, started_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.SpaceID, s.TargetCount, s.StartedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSession insert: %v", err)
	}

	return s
}
