package gym

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

var _ resultRepo = &resultRepoMock{}

type resultRepoMock struct {
	CreateFunc             func(ctx context.Context, result *domain.PracticeResult) (*domain.PracticeResult, error)
	ListBySessionFunc      func(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error)
	AggregateBySessionFunc func(ctx context.Context, sessionID uuid.UUID) (domain.ResultAggregation, error)

	calls struct {
		Create []struct {
			Ctx    context.Context
			Result *domain.PracticeResult
		}
		ListBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
		AggregateBySession []struct {
			Ctx       context.Context
			SessionID uuid.UUID
		}
	}
	lockCreate             sync.RWMutex
	lockListBySession      sync.RWMutex
	lockAggregateBySession sync.RWMutex
}

func (mock *resultRepoMock) Create(ctx context.Context, result *domain.PracticeResult) (*domain.PracticeResult, error) {
	if mock.CreateFunc == nil {
		panic("resultRepoMock.CreateFunc: method is nil but resultRepo.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Result *domain.PracticeResult
	}{Ctx: ctx, Result: result}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, result)
}

func (mock *resultRepoMock) CreateCalls() []struct {
	Ctx    context.Context
	Result *domain.PracticeResult
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *resultRepoMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.PracticeResult, error) {
	if mock.ListBySessionFunc == nil {
		panic("resultRepoMock.ListBySessionFunc: method is nil but resultRepo.ListBySession was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockListBySession.Lock()
	mock.calls.ListBySession = append(mock.calls.ListBySession, callInfo)
	mock.lockListBySession.Unlock()
	return mock.ListBySessionFunc(ctx, sessionID)
}

func (mock *resultRepoMock) ListBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockListBySession.RLock()
	calls := mock.calls.ListBySession
	mock.lockListBySession.RUnlock()
	return calls
}

func (mock *resultRepoMock) AggregateBySession(ctx context.Context, sessionID uuid.UUID) (domain.ResultAggregation, error) {
	if mock.AggregateBySessionFunc == nil {
		panic("resultRepoMock.AggregateBySessionFunc: method is nil but resultRepo.AggregateBySession was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SessionID uuid.UUID
	}{Ctx: ctx, SessionID: sessionID}
	mock.lockAggregateBySession.Lock()
	mock.calls.AggregateBySession = append(mock.calls.AggregateBySession, callInfo)
	mock.lockAggregateBySession.Unlock()
	return mock.AggregateBySessionFunc(ctx, sessionID)
}

func (mock *resultRepoMock) AggregateBySessionCalls() []struct {
	Ctx       context.Context
	SessionID uuid.UUID
} {
	mock.lockAggregateBySession.RLock()
	calls := mock.calls.AggregateBySession
	mock.lockAggregateBySession.RUnlock()
	return calls
}
