package syncer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

var _ remoteStore = &remoteStoreMock{}

type remoteStoreMock struct {
	FetchCatalogueFunc  func(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error)
	UpsertCatalogueFunc func(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error

	calls struct {
		FetchCatalogue []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		UpsertCatalogue []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Cat    domain.Catalogue
		}
	}
	lockFetchCatalogue  sync.RWMutex
	lockUpsertCatalogue sync.RWMutex
}

func (mock *remoteStoreMock) FetchCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error) {
	if mock.FetchCatalogueFunc == nil {
		panic("remoteStoreMock.FetchCatalogueFunc: method is nil but remoteStore.FetchCatalogue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockFetchCatalogue.Lock()
	mock.calls.FetchCatalogue = append(mock.calls.FetchCatalogue, callInfo)
	mock.lockFetchCatalogue.Unlock()
	return mock.FetchCatalogueFunc(ctx, userID)
}

func (mock *remoteStoreMock) FetchCatalogueCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockFetchCatalogue.RLock()
	calls := mock.calls.FetchCatalogue
	mock.lockFetchCatalogue.RUnlock()
	return calls
}

func (mock *remoteStoreMock) UpsertCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error {
	if mock.UpsertCatalogueFunc == nil {
		panic("remoteStoreMock.UpsertCatalogueFunc: method is nil but remoteStore.UpsertCatalogue was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Cat    domain.Catalogue
	}{Ctx: ctx, UserID: userID, Cat: cat}
	mock.lockUpsertCatalogue.Lock()
	mock.calls.UpsertCatalogue = append(mock.calls.UpsertCatalogue, callInfo)
	mock.lockUpsertCatalogue.Unlock()
	return mock.UpsertCatalogueFunc(ctx, userID, cat)
}

func (mock *remoteStoreMock) UpsertCatalogueCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Cat    domain.Catalogue
} {
	mock.lockUpsertCatalogue.RLock()
	calls := mock.calls.UpsertCatalogue
	mock.lockUpsertCatalogue.RUnlock()
	return calls
}
