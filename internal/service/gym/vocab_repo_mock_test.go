package gym

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

var _ vocabRepo = &vocabRepoMock{}

type vocabRepoMock struct {
	GetByIDsFunc func(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Vocab, error)

	calls struct {
		GetByIDs []struct {
			Ctx     context.Context
			SpaceID uuid.UUID
			IDs     []uuid.UUID
		}
	}
	lockGetByIDs sync.RWMutex
}

func (mock *vocabRepoMock) GetByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.Vocab, error) {
	if mock.GetByIDsFunc == nil {
		panic("vocabRepoMock.GetByIDsFunc: method is nil but vocabRepo.GetByIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		SpaceID uuid.UUID
		IDs     []uuid.UUID
	}{Ctx: ctx, SpaceID: spaceID, IDs: ids}
	mock.lockGetByIDs.Lock()
	mock.calls.GetByIDs = append(mock.calls.GetByIDs, callInfo)
	mock.lockGetByIDs.Unlock()
	return mock.GetByIDsFunc(ctx, spaceID, ids)
}

func (mock *vocabRepoMock) GetByIDsCalls() []struct {
	Ctx     context.Context
	SpaceID uuid.UUID
	IDs     []uuid.UUID
} {
	mock.lockGetByIDs.RLock()
	calls := mock.calls.GetByIDs
	mock.lockGetByIDs.RUnlock()
	return calls
}
