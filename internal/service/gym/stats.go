package gym

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

// GetDueCount returns how many of the user's cards in the space are due now.
func (s *Service) GetDueCount(ctx context.Context, spaceID uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	if spaceID == uuid.Nil {
		return 0, domain.NewValidationError("space_id", "required")
	}

	count, err := s.cards.CountDue(ctx, userID, spaceID, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("count due cards: %w", err)
	}
	return count, nil
}

// GetGymStats returns the aggregate numbers for the gym dashboard.
func (s *Service) GetGymStats(ctx context.Context, spaceID uuid.UUID) (*domain.GymStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if spaceID == uuid.Nil {
		return nil, domain.NewValidationError("space_id", "required")
	}

	now := time.Now().UTC()

	dueCount, err := s.cards.CountDue(ctx, userID, spaceID, now)
	if err != nil {
		return nil, fmt.Errorf("count due cards: %w", err)
	}

	statusCounts, err := s.cards.CountByState(ctx, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("count cards by state: %w", err)
	}

	totalXP, err := s.cards.TotalXP(ctx, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("sum xp: %w", err)
	}

	return &domain.GymStats{
		DueCount:     dueCount,
		TotalWords:   statusCounts.Total,
		TotalXP:      totalXP,
		StatusCounts: statusCounts,
	}, nil
}
