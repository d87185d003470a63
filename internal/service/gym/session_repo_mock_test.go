package gym

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/internal/domain"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc            func(ctx context.Context, session *domain.PracticeSession) (*domain.PracticeSession, error)
	GetByIDFunc           func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error)
	IncrementProgressFunc func(ctx context.Context, userID, sessionID uuid.UUID, xpDelta int) error
	FinishFunc            func(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error)

	calls struct {
		Create []struct {
			Ctx     context.Context
			Session *domain.PracticeSession
		}
		GetByID []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			SessionID uuid.UUID
		}
		IncrementProgress []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			SessionID uuid.UUID
			XPDelta   int
		}
		Finish []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			SessionID uuid.UUID
		}
	}
	lockCreate            sync.RWMutex
	lockGetByID           sync.RWMutex
	lockIncrementProgress sync.RWMutex
	lockFinish            sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context, session *domain.PracticeSession) (*domain.PracticeSession, error) {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Session *domain.PracticeSession
	}{Ctx: ctx, Session: session}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, session)
}

func (mock *sessionRepoMock) CreateCalls() []struct {
	Ctx     context.Context
	Session *domain.PracticeSession
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *sessionRepoMock) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	if mock.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc: method is nil but sessionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		SessionID uuid.UUID
	}{Ctx: ctx, UserID: userID, SessionID: sessionID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, sessionID)
}

func (mock *sessionRepoMock) GetByIDCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	SessionID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *sessionRepoMock) IncrementProgress(ctx context.Context, userID, sessionID uuid.UUID, xpDelta int) error {
	if mock.IncrementProgressFunc == nil {
		panic("sessionRepoMock.IncrementProgressFunc: method is nil but sessionRepo.IncrementProgress was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		SessionID uuid.UUID
		XPDelta   int
	}{Ctx: ctx, UserID: userID, SessionID: sessionID, XPDelta: xpDelta}
	mock.lockIncrementProgress.Lock()
	mock.calls.IncrementProgress = append(mock.calls.IncrementProgress, callInfo)
	mock.lockIncrementProgress.Unlock()
	return mock.IncrementProgressFunc(ctx, userID, sessionID, xpDelta)
}

func (mock *sessionRepoMock) IncrementProgressCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	SessionID uuid.UUID
	XPDelta   int
} {
	mock.lockIncrementProgress.RLock()
	calls := mock.calls.IncrementProgress
	mock.lockIncrementProgress.RUnlock()
	return calls
}

func (mock *sessionRepoMock) Finish(ctx context.Context, userID, sessionID uuid.UUID) (*domain.PracticeSession, error) {
	if mock.FinishFunc == nil {
		panic("sessionRepoMock.FinishFunc: method is nil but sessionRepo.Finish was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		SessionID uuid.UUID
	}{Ctx: ctx, UserID: userID, SessionID: sessionID}
	mock.lockFinish.Lock()
	mock.calls.Finish = append(mock.calls.Finish, callInfo)
	mock.lockFinish.Unlock()
	return mock.FinishFunc(ctx, userID, sessionID)
}

func (mock *sessionRepoMock) FinishCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	SessionID uuid.UUID
} {
	mock.lockFinish.RLock()
	calls := mock.calls.Finish
	mock.lockFinish.RUnlock()
	return calls
}
