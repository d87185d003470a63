package gym

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

// TrackWordInput holds the parameters for adding a word to the gym.
type TrackWordInput struct {
	SpaceID uuid.UUID
	VocabID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *TrackWordInput) Validate() error {
	var errs []domain.FieldError

	if i.SpaceID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "space_id", Message: "required"})
	}
	if i.VocabID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "vocab_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// TrackWord starts scheduling a vocabulary item for the user: it creates
// the zero-state card (difficulty 5.0, stability 0, due immediately).
// Idempotent: tracking an already-tracked word returns the existing card
// untouched.
func (s *Service) TrackWord(ctx context.Context, input TrackWordInput) (*domain.Card, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	vocabs, err := s.vocab.GetByIDs(ctx, input.SpaceID, []uuid.UUID{input.VocabID})
	if err != nil {
		return nil, fmt.Errorf("fetch vocab: %w", err)
	}
	if len(vocabs) == 0 {
		return nil, fmt.Errorf("vocab %s: %w", input.VocabID, domain.ErrNotFound)
	}

	card, err := s.cards.Upsert(ctx, domain.NewCard(userID, input.VocabID, input.SpaceID, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("upsert card: %w", err)
	}

	s.log.Info("word tracked", "vocab_id", input.VocabID, "space_id", input.SpaceID)
	return card, nil
}
