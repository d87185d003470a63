// Package gym implements the practice engine: session generation,
// result submission, spaced-repetition scheduling, and XP progression.
package gym

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/internal/events"
	"github.com/vodexapp/vodex-backend/internal/service/gym/fsrs"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type cardRepo interface {
	Get(ctx context.Context, userID, vocabID, spaceID uuid.UUID) (*domain.Card, error)
	DueCards(ctx context.Context, userID, spaceID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error)
	Upsert(ctx context.Context, card *domain.Card) (*domain.Card, error)
	UpdateAfterReview(ctx context.Context, userID, vocabID, spaceID uuid.UUID, params domain.CardUpdateParams) (*domain.Card, error)
	CountDue(ctx context.Context, userID, spaceID uuid.UUID, now time.Time) (int, error)
	CountByState(ctx context.Context, userID, spaceID uuid.UUID) (domain.CardStatusCounts, error)
	TotalXP(ctx context.Context, userID, spaceID uuid.UUID) (int, error)
}

type sessionRepo interface {
	Create(ctx context.Context, session *domain.PracticeSession) (*domain.PracticeSession, error)
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error)
	IncrementProgress(ctx context.Context, userID, sessionID uuid.UUID, xpDelta int) error
	Finish(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error)
}

type resultRepo interface {
	Create(ctx context.Context, result *domain.PracticeResult) (*domain.PracticeResult, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error)
	AggregateBySession(ctx context.Context, sessionID uuid.UUID) (domain.ResultAggregation, error)
}

type vocabRepo interface {
	GetByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Vocab, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventEmitter interface {
	Publish(event events.Event)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// SchedulerConfig holds the tunable scheduling parameters threaded from
// application config into the FSRS scheduler.
type SchedulerConfig struct {
	DesiredRetention float64
	MaxIntervalDays  int
	EnableFuzz       bool
	LearningSteps    []time.Duration
	RelearningSteps  []time.Duration
}

// Limits on session generation. The due-item query and session aggregation
// are bounded by these; nothing in the gym is long-running.
const (
	maxTargetCount     = 50
	defaultTargetCount = 10
	secondsPerExercise = 45
)

// Service implements the gym business logic.
type Service struct {
	cards    cardRepo
	sessions sessionRepo
	results  resultRepo
	vocab    vocabRepo
	tx       txManager
	emitter  eventEmitter
	log      *slog.Logger

	schedCfg SchedulerConfig
	weights  [19]float64
}

// NewService creates a new gym service.
func NewService(
	log *slog.Logger,
	cards cardRepo,
	sessions sessionRepo,
	results resultRepo,
	vocab vocabRepo,
	tx txManager,
	emitter eventEmitter,
	schedCfg SchedulerConfig,
	weights [19]float64,
) (*Service, error) {
	if err := fsrs.ValidateWeights(weights); err != nil {
		return nil, fmt.Errorf("invalid FSRS weights: %w", err)
	}

	return &Service{
		cards:    cards,
		sessions: sessions,
		results:  results,
		vocab:    vocab,
		tx:       tx,
		emitter:  emitter,
		log:      log.With("service", "gym"),
		schedCfg: schedCfg,
		weights:  weights,
	}, nil
}

// fsrsParams assembles scheduler parameters from service config.
func (s *Service) fsrsParams() fsrs.Parameters {
	return fsrs.Parameters{
		W:                s.weights,
		DesiredRetention: s.schedCfg.DesiredRetention,
		MaxIntervalDays:  s.schedCfg.MaxIntervalDays,
		EnableFuzz:       s.schedCfg.EnableFuzz,
		LearningSteps:    s.schedCfg.LearningSteps,
		RelearningSteps:  s.schedCfg.RelearningSteps,
	}
}

// gradeToRating maps the wire grade to the FSRS rating. The numeric values
// are aligned; the indirection keeps the fsrs package domain-free.
func gradeToRating(grade domain.Grade) fsrs.Rating {
	return fsrs.Rating(grade)
}

func toFSRSCard(card *domain.Card, now time.Time) fsrs.Card {
	fc := fsrs.Card{
		State:         fsrs.State(card.State),
		Step:          card.Step,
		Stability:     card.Stability,
		Difficulty:    card.Difficulty,
		Due:           card.Due,
		LastReview:    card.LastReview,
		Reps:          card.Reps,
		Lapses:        card.Lapses,
		ScheduledDays: card.ScheduledDays,
		ElapsedDays:   card.ElapsedDays,
	}

	// The store keeps elapsed_days=0 after every review; recompute the real
	// gap since last_review so retrievability reflects how late the review is.
	if card.LastReview != nil {
		fc.ElapsedDays = max(0, int(now.Sub(*card.LastReview).Hours()/24))
	}

	return fc
}
