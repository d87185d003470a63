package gym

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

// CompleteSession marks a session finished and returns its summary.
// Idempotent: repeat calls keep the original finish time and recompute the
// summary from the immutable result rows, so the numbers never drift.
func (s *Service) CompleteSession(ctx context.Context, input CompleteSessionInput) (*domain.SessionSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := s.sessions.Finish(ctx, userID, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("finish session: %w", err)
	}

	agg, err := s.results.AggregateBySession(ctx, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("aggregate results: %w", err)
	}

	summary := &domain.SessionSummary{
		SessionID:      session.ID,
		CompletedCount: agg.Count,
		TotalXP:        agg.TotalXP,
		RatingDistribution: domain.GradeCounts{
			Again: agg.AgainCount,
			Hard:  agg.HardCount,
			Good:  agg.GoodCount,
			Easy:  agg.EasyCount,
		},
	}
	if agg.AvgResponseMs != nil {
		summary.AvgResponseTimeMs = *agg.AvgResponseMs
	}
	if session.FinishedAt != nil {
		summary.FinishedAt = *session.FinishedAt
	}

	s.log.Info("practice session completed",
		"session_id", session.ID,
		"completed", agg.Count,
		"total_xp", agg.TotalXP)

	return summary, nil
}

// SessionResults returns the session's submitted results ordered by
// exercise position. The ownership check runs first so one user cannot
// page through another's session.
func (s *Service) SessionResults(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if sessionID == uuid.Nil {
		return nil, domain.NewValidationError("session_id", "required")
	}

	if _, err := s.sessions.GetByID(ctx, userID, sessionID); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	results, err := s.results.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}
