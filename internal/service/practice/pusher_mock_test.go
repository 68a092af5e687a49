package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

var _ pusher = &pusherMock{}

type pusherMock struct {
	PushFunc func(ctx context.Context, userID uuid.UUID, cat domain.Catalogue)

	calls struct {
		Push []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Cat    domain.Catalogue
		}
	}
	lockPush sync.RWMutex
}

func (mock *pusherMock) Push(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) {
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Cat    domain.Catalogue
	}{Ctx: ctx, UserID: userID, Cat: cat}
	mock.lockPush.Lock()
	mock.calls.Push = append(mock.calls.Push, callInfo)
	mock.lockPush.Unlock()
	if mock.PushFunc != nil {
		mock.PushFunc(ctx, userID, cat)
	}
}

func (mock *pusherMock) PushCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Cat    domain.Catalogue
} {
	mock.lockPush.RLock()
	calls := mock.calls.Push
	mock.lockPush.RUnlock()
	return calls
}
