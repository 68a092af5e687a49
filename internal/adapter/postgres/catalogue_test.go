package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordpractice/internal/adapter/postgres"
	"github.com/heartmarshall/wordpractice/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wordpractice/internal/domain"
)

func newCatalogueStore(t *testing.T) *postgres.CatalogueStore {
	t.Helper()
	store, _ := newCatalogueStoreWithPool(t)
	return store
}

func newCatalogueStoreWithPool(t *testing.T) (*postgres.CatalogueStore, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return postgres.NewCatalogueStore(pool, postgres.NewTxManager(pool), slog.New(slog.NewTextHandler(io.Discard, nil))), pool
}

func TestCatalogueStore_FetchMissing(t *testing.T) {
	store := newCatalogueStore(t)

	_, err := store.FetchCatalogue(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogueStore_FetchMalformedIsTransport(t *testing.T) {
	store, pool := newCatalogueStoreWithPool(t)
	ctx := context.Background()

	for _, entries := range []string{
		`[{"word":5},{"definition":"x"}]`,
		`[{"word":"Harbor"},{"word":"harbor"}]`,
	} {
		userID := uuid.New()
		_, err := pool.Exec(ctx,
			`INSERT INTO catalogues (user_id, entries, word_count, updated_at) VALUES ($1, $2, 2, now())`,
			userID, entries)
		require.NoError(t, err)

		_, err = store.FetchCatalogue(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrTransport, entries)
	}
}

func TestCatalogueStore_UpsertAndFetch(t *testing.T) {
	store := newCatalogueStore(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	first := domain.Catalogue{domain.NewWordEntry("harbor", "a sheltered port", now)}
	first[0].Score = 35
	first[0].Mistakes["harbour"] = 1
	require.NoError(t, store.UpsertCatalogue(ctx, userID, first))

	got, err := store.FetchCatalogue(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "harbor", got[0].Word)
	assert.Equal(t, 35.0, got[0].Score)
	assert.Equal(t, 1, got[0].Mistakes["harbour"])

	second := append(first.Clone(), domain.NewWordEntry("anchor", "", now))
	require.NoError(t, store.UpsertCatalogue(ctx, userID, second))

	got, err = store.FetchCatalogue(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	revs, err := store.Revisions(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, 2, revs[0].WordCount)
	assert.Equal(t, 1, revs[1].WordCount)
}

func TestCatalogueStore_PruneKeepsNewest(t *testing.T) {
	store := newCatalogueStore(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, store.UpsertCatalogue(ctx, userID, domain.Catalogue{}))
	require.NoError(t, store.UpsertCatalogue(ctx, userID, domain.Catalogue{}))

	_, err := store.PruneRevisions(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)

	revs, err := store.Revisions(ctx, userID, 10)
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}
