package gym

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

// GenerateSessionOutput is the session payload returned to the client.
type GenerateSessionOutput struct {
	Session                  *domain.PracticeSession
	Exercises                []domain.Exercise
	EstimatedDurationMinutes int
}

// GenerateSession builds a new practice session from the user's due cards.
//
// Due cards are fetched oldest-first with a 2x overfetch so locked or
// orphaned items can be skipped without a second query. Returns
// domain.ErrNothingDue when no card is due.
func (s *Service) GenerateSession(ctx context.Context, input GenerateSessionInput) (*GenerateSessionOutput, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	targetCount := input.TargetCount
	if targetCount == 0 {
		targetCount = defaultTargetCount
	}

	now := time.Now().UTC()

	cards, err := s.cards.DueCards(ctx, userID, input.SpaceID, now, targetCount*2)
	if err != nil {
		return nil, fmt.Errorf("fetch due cards: %w", err)
	}
	if len(cards) == 0 {
		return nil, domain.ErrNothingDue
	}

	if len(cards) > targetCount {
		cards = cards[:targetCount]
	}

	vocabIDs := make([]uuid.UUID, 0, len(cards))
	for _, c := range cards {
		vocabIDs = append(vocabIDs, c.VocabID)
	}

	vocabs, err := s.vocab.GetByIDs(ctx, input.SpaceID, vocabIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch vocab: %w", err)
	}
	vocabByID := make(map[uuid.UUID]domain.Vocab, len(vocabs))
	for _, v := range vocabs {
		vocabByID[v.ID] = v
	}

	recent := newRecentTypes(3)
	exercises := make([]domain.Exercise, 0, len(cards))
	for _, card := range cards {
		vocab, ok := vocabByID[card.VocabID]
		if !ok {
			// Vocab row was deleted from under the card; skip it.
			s.log.Warn("due card references missing vocab",
				"vocab_id", card.VocabID, "space_id", card.SpaceID)
			continue
		}

		chosen := pickPracticeType(card, recent)
		recent.push(chosen)

		ex := buildExercise(vocab, chosen, len(exercises))
		exercises = append(exercises, ex)
	}

	if len(exercises) == 0 {
		return nil, domain.ErrNothingDue
	}

	session, err := s.sessions.Create(ctx, &domain.PracticeSession{
		ID:          uuid.New(),
		UserID:      userID,
		SpaceID:     input.SpaceID,
		TargetCount: len(exercises),
		StartedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("practice session generated",
		"session_id", session.ID,
		"space_id", input.SpaceID,
		"exercises", len(exercises))

	return &GenerateSessionOutput{
		Session:                  session,
		Exercises:                exercises,
		EstimatedDurationMinutes: estimateDurationMinutes(len(exercises)),
	}, nil
}

// estimateDurationMinutes assumes 45 seconds per exercise, rounded up to a
// whole minute.
func estimateDurationMinutes(count int) int {
	return (count*secondsPerExercise + 59) / 60
}

// recentTypes is a fixed-capacity sliding window over the last chosen
// practice types, used to spread modality variety across a session.
type recentTypes struct {
	buf []domain.PracticeType
	cap int
}

func newRecentTypes(capacity int) *recentTypes {
	return &recentTypes{cap: capacity}
}

func (r *recentTypes) push(pt domain.PracticeType) {
	r.buf = append(r.buf, pt)
	if len(r.buf) > r.cap {
		r.buf = r.buf[1:]
	}
}

func (r *recentTypes) contains(pt domain.PracticeType) bool {
	for _, t := range r.buf {
		if t == pt {
			return true
		}
	}
	return false
}

// pickPracticeType selects the modality for one card deterministically:
// walk the unlocked available types in ladder order, skipping the card's
// last practiced type and anything in the recent window. If the exclusions
// leave nothing, fall back to the unfiltered candidate list so a pick
// always exists.
func pickPracticeType(card *domain.Card, recent *recentTypes) domain.PracticeType {
	// Candidates keep the ladder's order: ascending required stability.
	ladder := domain.PracticeTypeLadder()
	candidates := make([]domain.PracticeType, 0, len(ladder))
	for _, cfg := range ladder {
		if !cfg.Available {
			continue
		}
		if !card.HasUnlocked(cfg.Type) {
			continue
		}
		candidates = append(candidates, cfg.Type)
	}
	if len(candidates) == 0 {
		return domain.BasePracticeType
	}

	for _, pt := range candidates {
		if recent.contains(pt) {
			continue
		}
		if card.LastPracticeType != nil && *card.LastPracticeType == pt {
			continue
		}
		return pt
	}

	// Exclusions emptied the set: fall back to the unfiltered candidates.
	return candidates[0]
}

// buildExercise shapes the drill for the chosen modality. Unavailable
// modalities never reach this point, but the fallback keeps the shape
// well-defined if the table ever grows a type without a renderer.
func buildExercise(vocab domain.Vocab, chosen domain.PracticeType, order int) domain.Exercise {
	ex := domain.Exercise{
		VocabID:      vocab.ID,
		Word:         vocab.Word,
		Translation:  vocab.Translation,
		Example:      vocab.Example,
		ImageURL:     vocab.ImageURL,
		AudioURL:     vocab.AudioURL,
		PracticeType: chosen,
		IntendedType: chosen,
		Order:        order,
	}

	switch chosen {
	case domain.PracticeTypeRecognition:
		ex.Prompt = vocab.Word
		ex.Answer = vocab.Translation
	case domain.PracticeTypeProduction:
		ex.Prompt = vocab.Translation
		ex.Answer = vocab.Word
	case domain.PracticeTypeSpelling:
		ex.Prompt = vocab.Translation
		ex.Answer = vocab.Word
		ex.Hints = spellingHints(vocab.Word)
	default:
		ex.PracticeType = domain.BasePracticeType
		ex.Prompt = vocab.Word
		ex.Answer = vocab.Translation
	}

	return ex
}

// spellingHints returns the word's first letter and its length as hints,
// e.g. ["starts with: c", "letters: 5"].
func spellingHints(word string) []string {
	runes := []rune(strings.TrimSpace(word))
	if len(runes) == 0 {
		return nil
	}
	return []string{
		fmt.Sprintf("starts with: %c", runes[0]),
		fmt.Sprintf("letters: %d", len(runes)),
	}
}
