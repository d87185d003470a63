package gym

import (
	"context"
	"sync"

	"github.com/vodexapp/vodex-backend/internal/events"
)

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

var _ eventEmitter = &eventEmitterMock{}

type eventEmitterMock struct {
	PublishFunc func(event events.Event)

	calls struct {
		Publish []struct {
			Event events.Event
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventEmitterMock) Publish(event events.Event) {
	if mock.PublishFunc == nil {
		panic("eventEmitterMock.PublishFunc: method is nil but eventEmitter.Publish was just called")
	}
	callInfo := struct {
		Event events.Event
	}{Event: event}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(event)
}

func (mock *eventEmitterMock) PublishCalls() []struct {
	Event events.Event
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
