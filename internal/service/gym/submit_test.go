package gym

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/internal/events"
	"github.com/vodexapp/vodex-backend/internal/service/gym/fsrs"
	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

type submitFixture struct {
	userID    uuid.UUID
	spaceID   uuid.UUID
	sessionID uuid.UUID
	card      *domain.Card

	cards    *cardRepoMock
	sessions *sessionRepoMock
	results  *resultRepoMock
	vocab    *vocabRepoMock
	tx       *txManagerMock
	emitter  *eventEmitterMock
	svc      *Service
}

// newSubmitFixture wires the happy-path mocks; individual tests override
// the funcs they care about.
func newSubmitFixture(t *testing.T, card *domain.Card) *submitFixture {
	t.Helper()

	f := &submitFixture{
		userID:    card.UserID,
		spaceID:   card.SpaceID,
		sessionID: uuid.New(),
		card:      card,
	}

	f.cards = &cardRepoMock{
		GetFunc: func(ctx context.Context, userID, vocabID, spaceID uuid.UUID) (*domain.Card, error) {
			c := *card
			return &c, nil
		},
		UpdateAfterReviewFunc: func(ctx context.Context, userID, vocabID, spaceID uuid.UUID, params domain.CardUpdateParams) (*domain.Card, error) {
			updated := *card
			updated.State = params.State
			updated.Stability = params.Stability
			updated.Difficulty = params.Difficulty
			updated.Due = params.Due
			updated.Reps = params.Reps
			updated.Lapses = params.Lapses
			updated.XP += params.XPDelta
			updated.LastPracticeType = &params.LastPracticeType
			updated.UnlockedTypes = params.UnlockedTypes
			return &updated, nil
		},
	}
	f.sessions = &sessionRepoMock{
		GetByIDFunc: func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
			return &domain.PracticeSession{ID: sessionID, UserID: userID, SpaceID: f.spaceID, TargetCount: 10, StartedAt: time.Now()}, nil
		},
		IncrementProgressFunc: func(ctx context.Context, userID, sessionID uuid.UUID, xpDelta int) error {
			return nil
		},
	}
	f.results = &resultRepoMock{
		CreateFunc: func(ctx context.Context, result *domain.PracticeResult) (*domain.PracticeResult, error) {
			return result, nil
		},
	}
	f.vocab = &vocabRepoMock{}
	f.tx = &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
	f.emitter = &eventEmitterMock{
		PublishFunc: func(event events.Event) {},
	}

	f.svc = newTestService(f.cards, f.sessions, f.results, f.vocab, f.tx, f.emitter)
	return f
}

func (f *submitFixture) ctx() context.Context {
	return ctxutil.WithUserID(context.Background(), f.userID)
}

func (f *submitFixture) input(grade domain.Grade, pt domain.PracticeType) SubmitResultInput {
	return SubmitResultInput{
		SessionID:     f.sessionID,
		SpaceID:       f.spaceID,
		VocabID:       f.card.VocabID,
		PracticeType:  pt,
		Grade:         grade,
		Order:         0,
		UserAnswer:    "слово",
		CorrectAnswer: "слово",
		ResponseMs:    ptr(3200),
	}
}

func reviewCard(stability, difficulty float64, last *domain.PracticeType) *domain.Card {
	due := time.Now().Add(-2 * time.Hour)
	return &domain.Card{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		VocabID:          uuid.New(),
		SpaceID:          uuid.New(),
		State:            domain.CardStateReview,
		Stability:        stability,
		Difficulty:       difficulty,
		Due:              due,
		Reps:             4,
		ElapsedDays:      5,
		UnlockedTypes:    []domain.PracticeType{domain.PracticeTypeRecognition, domain.PracticeTypeProduction, domain.PracticeTypeSpelling},
		LastPracticeType: last,
	}
}

func TestService_SubmitResult_Success(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)

	out, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// XP from the stability the learner reviewed at: round(25 * 1.0 * (1 + 10/30*0.5)).
	wantXP := CalculateXP(domain.GradeGood, domain.PracticeTypeRecognition, 10)
	if out.XPGained != wantXP {
		t.Errorf("xp: got %d, want %d", out.XPGained, wantXP)
	}
	if out.Result.StabilityBefore != 10 {
		t.Errorf("stability before: got %v, want 10", out.Result.StabilityBefore)
	}
	// The caller supplies both answers; the result row records them as-is.
	if out.Result.UserAnswer != "слово" || out.Result.CorrectAnswer != "слово" {
		t.Errorf("answers: got %q / %q", out.Result.UserAnswer, out.Result.CorrectAnswer)
	}
	if out.Result.StabilityAfter <= 10 {
		t.Errorf("good review must grow stability: got %v", out.Result.StabilityAfter)
	}
	if !out.NextDue.After(time.Now()) {
		t.Errorf("next due must be in the future: %v", out.NextDue)
	}

	// All three writes happened inside one transaction.
	if len(f.tx.RunInTxCalls()) != 1 {
		t.Errorf("RunInTx calls: got %d, want 1", len(f.tx.RunInTxCalls()))
	}
	updateCalls := f.cards.UpdateAfterReviewCalls()
	if len(updateCalls) != 1 {
		t.Fatalf("UpdateAfterReview calls: got %d, want 1", len(updateCalls))
	}
	if !updateCalls[0].Params.ExpectedDue.Equal(card.Due) {
		t.Errorf("guard due: got %v, want %v", updateCalls[0].Params.ExpectedDue, card.Due)
	}
	if len(f.results.CreateCalls()) != 1 {
		t.Errorf("result Create calls: got %d, want 1", len(f.results.CreateCalls()))
	}
	incCalls := f.sessions.IncrementProgressCalls()
	if len(incCalls) != 1 || incCalls[0].XPDelta != wantXP {
		t.Errorf("IncrementProgress: %+v", incCalls)
	}

	// Stats invalidation event fired after commit.
	pubCalls := f.emitter.PublishCalls()
	if len(pubCalls) != 1 || pubCalls[0].Event.Topic != events.TopicSpaceStatsChanged {
		t.Errorf("Publish calls: %+v", pubCalls)
	}
}

func TestService_SubmitResult_TransitionPenalty(t *testing.T) {
	t.Parallel()

	last := domain.PracticeTypeRecognition
	card := reviewCard(10, 5, &last)
	f := newSubmitFixture(t, card)

	out, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeProduction))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// XP still uses the pre-penalty stability.
	wantXP := CalculateXP(domain.GradeGood, domain.PracticeTypeProduction, 10)
	if out.XPGained != wantXP {
		t.Errorf("xp: got %d, want %d", out.XPGained, wantXP)
	}

	// Scheduling ran on the discounted state: replay it to check.
	penalizedS, penalizedD := ApplyTransitionPenalty(10, 5)
	expected, err := fsrs.Schedule(f.svc.fsrsParams(), fsrs.Card{
		State:       fsrs.StateReview,
		Stability:   penalizedS,
		Difficulty:  penalizedD,
		Due:         card.Due,
		Reps:        card.Reps,
		ElapsedDays: card.ElapsedDays,
	}, fsrs.Good, time.Now())
	if err != nil {
		t.Fatalf("replay schedule: %v", err)
	}
	if out.Result.StabilityAfter != expected.Stability {
		t.Errorf("stability after: got %v, want %v", out.Result.StabilityAfter, expected.Stability)
	}
}

func TestService_SubmitResult_LateReviewUsesRealElapsedTime(t *testing.T) {
	t.Parallel()

	// After every review the store persists elapsed_days=0; for a card
	// reviewed 60 days ago the scheduler must see 60 days, not the stored
	// zero, or every overdue review is graded as if it were on time.
	lastReview := time.Now().UTC().Add(-60 * 24 * time.Hour)
	card := reviewCard(10, 5, nil)
	card.LastReview = &lastReview
	card.ElapsedDays = 0
	f := newSubmitFixture(t, card)

	out, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected, err := fsrs.Schedule(f.svc.fsrsParams(), fsrs.Card{
		State:       fsrs.StateReview,
		Stability:   10,
		Difficulty:  5,
		Due:         card.Due,
		LastReview:  &lastReview,
		Reps:        card.Reps,
		ElapsedDays: 60,
	}, fsrs.Good, time.Now())
	if err != nil {
		t.Fatalf("replay schedule: %v", err)
	}
	if out.Result.StabilityAfter != expected.Stability {
		t.Errorf("stability after: got %v, want %v", out.Result.StabilityAfter, expected.Stability)
	}

	// The punctual (elapsed=1) schedule must differ: a successful recall
	// after a long gap is far stronger evidence and grows stability more.
	punctual, err := fsrs.Schedule(f.svc.fsrsParams(), fsrs.Card{
		State:       fsrs.StateReview,
		Stability:   10,
		Difficulty:  5,
		Due:         card.Due,
		Reps:        card.Reps,
		ElapsedDays: 1,
	}, fsrs.Good, time.Now())
	if err != nil {
		t.Fatalf("punctual schedule: %v", err)
	}
	if out.Result.StabilityAfter <= punctual.Stability {
		t.Errorf("late review must outgrow punctual one: got %v, punctual %v",
			out.Result.StabilityAfter, punctual.Stability)
	}
}

func TestService_SubmitResult_NoPenaltySameType(t *testing.T) {
	t.Parallel()

	last := domain.PracticeTypeProduction
	card := reviewCard(10, 5, &last)
	f := newSubmitFixture(t, card)

	out, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeProduction))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.StabilityAfter <= 10 {
		t.Errorf("same-type review should not be penalized: stability after %v", out.Result.StabilityAfter)
	}
}

func TestService_SubmitResult_UnlocksFromPostReviewStability(t *testing.T) {
	t.Parallel()

	// A brand-new card answered EASY jumps straight to w[3] stability,
	// which clears both the production and spelling thresholds.
	card := &domain.Card{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		VocabID:       uuid.New(),
		SpaceID:       uuid.New(),
		State:         domain.CardStateNew,
		Stability:     0,
		Difficulty:    5,
		Due:           time.Now().Add(-time.Minute),
		UnlockedTypes: []domain.PracticeType{domain.PracticeTypeRecognition},
	}
	f := newSubmitFixture(t, card)

	out, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeEasy, domain.PracticeTypeRecognition))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.PracticeType{domain.PracticeTypeProduction, domain.PracticeTypeSpelling}
	if len(out.NewlyUnlocked) != len(want) {
		t.Fatalf("newly unlocked: got %v, want %v", out.NewlyUnlocked, want)
	}
	for i := range want {
		if out.NewlyUnlocked[i] != want[i] {
			t.Fatalf("newly unlocked: got %v, want %v", out.NewlyUnlocked, want)
		}
	}

	// The persisted unlocked set is the merge, not just the delta.
	params := f.cards.UpdateAfterReviewCalls()[0].Params
	if len(params.UnlockedTypes) != 3 {
		t.Errorf("persisted unlocked types: %v", params.UnlockedTypes)
	}

	// XP for the brand-new card carries no stability bonus.
	if out.XPGained != 40 {
		t.Errorf("xp: got %d, want 40", out.XPGained)
	}
}

func TestService_SubmitResult_DuplicateResultAbortsTx(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)
	f.results.CreateFunc = func(ctx context.Context, result *domain.PracticeResult) (*domain.PracticeResult, error) {
		return nil, domain.ErrAlreadyExists
	}

	_, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if len(f.sessions.IncrementProgressCalls()) != 0 {
		t.Error("session counters must not be touched when the result insert fails")
	}
	if len(f.emitter.PublishCalls()) != 0 {
		t.Error("no event on a failed submission")
	}
}

func TestService_SubmitResult_ConcurrentUpdateConflict(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)
	f.cards.UpdateAfterReviewFunc = func(ctx context.Context, userID, vocabID, spaceID uuid.UUID, params domain.CardUpdateParams) (*domain.Card, error) {
		return nil, domain.ErrConflict
	}

	_, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(f.results.CreateCalls()) != 0 {
		t.Error("result must not be written when the card update loses the guard")
	}
}

func TestService_SubmitResult_SessionAlreadyCompleted(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)
	f.sessions.GetByIDFunc = func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
		finished := time.Now().Add(-time.Minute)
		return &domain.PracticeSession{ID: sessionID, UserID: userID, FinishedAt: &finished}, nil
	}

	_, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_SubmitResult_CardNotFound(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)
	f.cards.GetFunc = func(ctx context.Context, userID, vocabID, spaceID uuid.UUID) (*domain.Card, error) {
		return nil, domain.ErrNotFound
	}

	_, err := f.svc.SubmitResult(f.ctx(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_SubmitResult_Unauthorized(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)

	_, err := f.svc.SubmitResult(context.Background(), f.input(domain.GradeGood, domain.PracticeTypeRecognition))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestService_SubmitResult_ValidatesInput(t *testing.T) {
	t.Parallel()

	card := reviewCard(10, 5, nil)
	f := newSubmitFixture(t, card)

	input := f.input(domain.Grade(9), domain.PracticeType("JUGGLING"))
	_, err := f.svc.SubmitResult(f.ctx(), input)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(vErr.Errors) != 2 {
		t.Errorf("field errors: got %d, want 2", len(vErr.Errors))
	}
}
