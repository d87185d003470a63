package gym

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

var _ cardRepo = &cardRepoMock{}

type cardRepoMock struct {
	GetFunc               func(ctx context.Context, userID, vocabID, spaceID uuid.UUID) (*domain.Card, error)
	DueCardsFunc          func(ctx context.Context, userID, spaceID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error)
	UpsertFunc            func(ctx context.Context, card *domain.Card) (*domain.Card, error)
	UpdateAfterReviewFunc func(ctx context.Context, userID, vocabID, spaceID uuid.UUID, params domain.CardUpdateParams) (*domain.Card, error)
	CountDueFunc          func(ctx context.Context, userID, spaceID uuid.UUID, now time.Time) (int, error)
	CountByStateFunc      func(ctx context.Context, userID, spaceID uuid.UUID) (domain.CardStatusCounts, error)
	TotalXPFunc           func(ctx context.Context, userID, spaceID uuid.UUID) (int, error)

	calls struct {
		Get []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			VocabID uuid.UUID
			SpaceID uuid.UUID
		}
		DueCards []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID uuid.UUID
			Now     time.Time
			Limit   int
		}
		Upsert []struct {
			Ctx  context.Context
			Card *domain.Card
		}
		UpdateAfterReview []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			VocabID uuid.UUID
			SpaceID uuid.UUID
			Params  domain.CardUpdateParams
		}
		CountDue []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID uuid.UUID
			Now     time.Time
		}
		CountByState []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID uuid.UUID
		}
		TotalXP []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			SpaceID uuid.UUID
		}
	}
	lockGet               sync.RWMutex
	lockDueCards          sync.RWMutex
	lockUpsert            sync.RWMutex
	lockUpdateAfterReview sync.RWMutex
	lockCountDue          sync.RWMutex
	lockCountByState      sync.RWMutex
	lockTotalXP           sync.RWMutex
}

func (mock *cardRepoMock) Get(ctx context.Context, userID, vocabID, spaceID uuid.UUID) (*domain.Card, error) {
	if mock.GetFunc == nil {
		panic("cardRepoMock.GetFunc: method is nil but cardRepo.Get was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		VocabID uuid.UUID
		SpaceID uuid.UUID
	}{Ctx: ctx, UserID: userID, VocabID: vocabID, SpaceID: spaceID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID, vocabID, spaceID)
}

func (mock *cardRepoMock) GetCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	VocabID uuid.UUID
	SpaceID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *cardRepoMock) DueCards(ctx context.Context, userID, spaceID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error) {
	if mock.DueCardsFunc == nil {
		panic("cardRepoMock.DueCardsFunc: method is nil but cardRepo.DueCards was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID uuid.UUID
		Now     time.Time
		Limit   int
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID, Now: now, Limit: limit}
	mock.lockDueCards.Lock()
	mock.calls.DueCards = append(mock.calls.DueCards, callInfo)
	mock.lockDueCards.Unlock()
	return mock.DueCardsFunc(ctx, userID, spaceID, now, limit)
}

func (mock *cardRepoMock) DueCardsCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID uuid.UUID
	Now     time.Time
	Limit   int
} {
	mock.lockDueCards.RLock()
	calls := mock.calls.DueCards
	mock.lockDueCards.RUnlock()
	return calls
}

func (mock *cardRepoMock) Upsert(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if mock.UpsertFunc == nil {
		panic("cardRepoMock.UpsertFunc: method is nil but cardRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Card *domain.Card
	}{Ctx: ctx, Card: card}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, card)
}

func (mock *cardRepoMock) UpsertCalls() []struct {
	Ctx  context.Context
	Card *domain.Card
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *cardRepoMock) UpdateAfterReview(ctx context.Context, userID, vocabID, spaceID uuid.UUID, params domain.CardUpdateParams) (*domain.Card, error) {
	if mock.UpdateAfterReviewFunc == nil {
		panic("cardRepoMock.UpdateAfterReviewFunc: method is nil but cardRepo.UpdateAfterReview was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		VocabID uuid.UUID
		SpaceID uuid.UUID
		Params  domain.CardUpdateParams
	}{Ctx: ctx, UserID: userID, VocabID: vocabID, SpaceID: spaceID, Params: params}
	mock.lockUpdateAfterReview.Lock()
	mock.calls.UpdateAfterReview = append(mock.calls.UpdateAfterReview, callInfo)
	mock.lockUpdateAfterReview.Unlock()
	return mock.UpdateAfterReviewFunc(ctx, userID, vocabID, spaceID, params)
}

func (mock *cardRepoMock) UpdateAfterReviewCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	VocabID uuid.UUID
	SpaceID uuid.UUID
	Params  domain.CardUpdateParams
} {
	mock.lockUpdateAfterReview.RLock()
	calls := mock.calls.UpdateAfterReview
	mock.lockUpdateAfterReview.RUnlock()
	return calls
}

func (mock *cardRepoMock) CountDue(ctx context.Context, userID, spaceID uuid.UUID, now time.Time) (int, error) {
	if mock.CountDueFunc == nil {
		panic("cardRepoMock.CountDueFunc: method is nil but cardRepo.CountDue was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID uuid.UUID
		Now     time.Time
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID, Now: now}
	mock.lockCountDue.Lock()
	mock.calls.CountDue = append(mock.calls.CountDue, callInfo)
	mock.lockCountDue.Unlock()
	return mock.CountDueFunc(ctx, userID, spaceID, now)
}

func (mock *cardRepoMock) CountDueCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID uuid.UUID
	Now     time.Time
} {
	mock.lockCountDue.RLock()
	calls := mock.calls.CountDue
	mock.lockCountDue.RUnlock()
	return calls
}

func (mock *cardRepoMock) CountByState(ctx context.Context, userID, spaceID uuid.UUID) (domain.CardStatusCounts, error) {
	if mock.CountByStateFunc == nil {
		panic("cardRepoMock.CountByStateFunc: method is nil but cardRepo.CountByState was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID uuid.UUID
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID}
	mock.lockCountByState.Lock()
	mock.calls.CountByState = append(mock.calls.CountByState, callInfo)
	mock.lockCountByState.Unlock()
	return mock.CountByStateFunc(ctx, userID, spaceID)
}

func (mock *cardRepoMock) CountByStateCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID uuid.UUID
} {
	mock.lockCountByState.RLock()
	calls := mock.calls.CountByState
	mock.lockCountByState.RUnlock()
	return calls
}

func (mock *cardRepoMock) TotalXP(ctx context.Context, userID, spaceID uuid.UUID) (int, error) {
	if mock.TotalXPFunc == nil {
		panic("cardRepoMock.TotalXPFunc: method is nil but cardRepo.TotalXP was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		SpaceID uuid.UUID
	}{Ctx: ctx, UserID: userID, SpaceID: spaceID}
	mock.lockTotalXP.Lock()
	mock.calls.TotalXP = append(mock.calls.TotalXP, callInfo)
	mock.lockTotalXP.Unlock()
	return mock.TotalXPFunc(ctx, userID, spaceID)
}

func (mock *cardRepoMock) TotalXPCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	SpaceID uuid.UUID
} {
	mock.lockTotalXP.RLock()
	calls := mock.calls.TotalXP
	mock.lockTotalXP.RUnlock()
	return calls
}
