package gym

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/internal/events"
	"github.com/vodexapp/vodex-backend/internal/service/gym/fsrs"
	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

// SubmitResultOutput is the outcome of one answered exercise.
type SubmitResultOutput struct {
	Card          *domain.Card
	Result        *domain.PracticeResult
	XPGained      int
	NewlyUnlocked []domain.PracticeType
	NextDue       time.Time
}

// SubmitResult grades one answered exercise: reschedules the card, awards
// XP, unlocks modalities, and appends the immutable result row. The card
// update, result insert, and session counters commit atomically.
//
// Double submission is rejected two ways: a repeated (session, vocab, order)
// insert fails with domain.ErrAlreadyExists, and a concurrent update of the
// same card loses the due-date guard and fails with domain.ErrConflict.
func (s *Service) SubmitResult(ctx context.Context, input SubmitResultInput) (*SubmitResultOutput, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, userID, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.FinishedAt != nil {
		return nil, fmt.Errorf("session %s already completed: %w", session.ID, domain.ErrConflict)
	}

	card, err := s.cards.Get(ctx, userID, input.VocabID, input.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	now := time.Now().UTC()

	// XP is computed from the stability the learner actually reviewed at,
	// before any penalty or reschedule touches it.
	preStability := card.Stability
	preDifficulty := card.Difficulty
	expectedDue := card.Due

	// First attempt in a harder modality discounts the memory state before
	// scheduling: recognition success says little about production strength.
	if isHarderTransition(card.LastPracticeType, input.PracticeType) {
		card.Stability, card.Difficulty = ApplyTransitionPenalty(card.Stability, card.Difficulty)
	}

	scheduled, err := fsrs.Schedule(s.fsrsParams(), toFSRSCard(card, now), gradeToRating(input.Grade), now)
	if err != nil {
		return nil, fmt.Errorf("schedule card: %w", err)
	}

	xp := CalculateXP(input.Grade, input.PracticeType, preStability)

	// Unlocks are checked against the post-review stability so a strong
	// answer can open a new modality immediately.
	newlyUnlocked := CheckUnlocks(scheduled.Stability, card.UnlockedTypes)
	unlockedTypes := append(append([]domain.PracticeType{}, card.UnlockedTypes...), newlyUnlocked...)

	responseMs := 0
	if input.ResponseMs != nil {
		responseMs = *input.ResponseMs
	}

	result := &domain.PracticeResult{
		ID:               uuid.New(),
		SessionID:        input.SessionID,
		VocabID:          input.VocabID,
		PracticeType:     input.PracticeType,
		Grade:            input.Grade,
		UserAnswer:       input.UserAnswer,
		CorrectAnswer:    input.CorrectAnswer,
		ResponseTimeMs:   responseMs,
		XPGained:         xp,
		StabilityBefore:  preStability,
		StabilityAfter:   scheduled.Stability,
		DifficultyBefore: preDifficulty,
		DifficultyAfter:  scheduled.Difficulty,
		Order:            input.Order,
		AnsweredAt:       now,
	}

	params := domain.CardUpdateParams{
		State:            domain.CardState(scheduled.State),
		Step:             scheduled.Step,
		Stability:        scheduled.Stability,
		Difficulty:       scheduled.Difficulty,
		Due:              scheduled.Due,
		LastReview:       scheduled.LastReview,
		Reps:             scheduled.Reps,
		Lapses:           scheduled.Lapses,
		ScheduledDays:    scheduled.ScheduledDays,
		ElapsedDays:      scheduled.ElapsedDays,
		XPDelta:          xp,
		LastPracticeType: input.PracticeType,
		UnlockedTypes:    unlockedTypes,
		ExpectedDue:      expectedDue,
	}

	var updated *domain.Card
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.cards.UpdateAfterReview(ctx, userID, input.VocabID, input.SpaceID, params)
		if txErr != nil {
			return fmt.Errorf("update card: %w", txErr)
		}

		result, txErr = s.results.Create(ctx, result)
		if txErr != nil {
			return fmt.Errorf("create result: %w", txErr)
		}

		if txErr = s.sessions.IncrementProgress(ctx, userID, input.SessionID, xp); txErr != nil {
			return fmt.Errorf("increment session progress: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Publish(events.Event{
		Topic:   events.TopicSpaceStatsChanged,
		UserID:  userID,
		SpaceID: input.SpaceID,
		At:      now,
	})

	s.log.Info("practice result submitted",
		"session_id", input.SessionID,
		"vocab_id", input.VocabID,
		"grade", input.Grade.String(),
		"xp", xp,
		"new_state", updated.State)

	return &SubmitResultOutput{
		Card:          updated,
		Result:        result,
		XPGained:      xp,
		NewlyUnlocked: newlyUnlocked,
		NextDue:       updated.Due,
	}, nil
}
