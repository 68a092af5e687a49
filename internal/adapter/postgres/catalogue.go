package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

const (
	cataloguesTable = "catalogues"
	revisionsTable  = "catalogue_revisions"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Revision is one stored snapshot of a user's catalogue.
type Revision struct {
	ID        int64
	WordCount int
	CreatedAt time.Time
}

// CatalogueStore keeps one catalogue per user as a JSONB array, plus an
// append-only history of every upload.
type CatalogueStore struct {
	pool *pgxpool.Pool
	tx   *TxManager
	log  *slog.Logger
	now  func() time.Time
}

// NewCatalogueStore creates a CatalogueStore.
func NewCatalogueStore(pool *pgxpool.Pool, tx *TxManager, logger *slog.Logger) *CatalogueStore {
	return &CatalogueStore{
		pool: pool,
		tx:   tx,
		log:  logger.With("adapter", "postgres"),
		now:  time.Now,
	}
}

// FetchCatalogue returns the user's catalogue or domain.ErrNotFound.
func (s *CatalogueStore) FetchCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error) {
	query, args, err := psql.
		Select("entries").
		From(cataloguesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	var raw []byte
	if err := QuerierFromCtx(ctx, s.pool).QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return nil, mapError(err, "catalogue", userID)
	}

	cat, err := domain.ParseCatalogueStrict(raw, s.now())
	if err != nil {
		return nil, fmt.Errorf("catalogue %s: %w: %w", userID, domain.ErrTransport, err)
	}
	return cat, nil
}

// UpsertCatalogue replaces the user's catalogue and records a revision in
// the same transaction.
func (s *CatalogueStore) UpsertCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error {
	if cat == nil {
		cat = domain.Catalogue{}
	}
	entries, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("encode catalogue: %w", err)
	}
	now := s.now().UTC()

	upsert, upsertArgs, err := psql.
		Insert(cataloguesTable).
		Columns("user_id", "entries", "word_count", "updated_at").
		Values(userID, string(entries), len(cat), now).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET entries = EXCLUDED.entries, word_count = EXCLUDED.word_count, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	revision, revisionArgs, err := psql.
		Insert(revisionsTable).
		Columns("user_id", "entries", "word_count", "created_at").
		Values(userID, string(entries), len(cat), now).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revision query: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := QuerierFromCtx(ctx, s.pool)
		if _, err := q.Exec(ctx, upsert, upsertArgs...); err != nil {
			return mapError(err, "catalogue", userID)
		}
		if _, err := q.Exec(ctx, revision, revisionArgs...); err != nil {
			return mapError(err, "catalogue revision", userID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "catalogue stored",
		slog.String("user_id", userID.String()),
		slog.Int("words", len(cat)),
	)
	return nil
}

// Revisions lists the newest revisions of the user's catalogue.
func (s *CatalogueStore) Revisions(ctx context.Context, userID uuid.UUID, limit uint64) ([]Revision, error) {
	query, args, err := psql.
		Select("id", "word_count", "created_at").
		From(revisionsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build revisions query: %w", err)
	}

	rows, err := QuerierFromCtx(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "catalogue revisions", userID)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.WordCount, &r.CreatedAt); err != nil {
			return nil, mapError(err, "catalogue revisions", userID)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "catalogue revisions", userID)
	}
	return out, nil
}

// PruneRevisions deletes revisions created before threshold, always keeping
// each user's newest revision. It returns the number of rows removed.
func (s *CatalogueStore) PruneRevisions(ctx context.Context, threshold time.Time) (int64, error) {
	newest := psql.
		Select("DISTINCT ON (user_id) id").
		From(revisionsTable).
		OrderBy("user_id", "created_at DESC", "id DESC")

	newestSQL, _, err := newest.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build prune subquery: %w", err)
	}

	query, args, err := psql.
		Delete(revisionsTable).
		Where(sq.Lt{"created_at": threshold}).
		Where("id NOT IN (" + newestSQL + ")").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build prune query: %w", err)
	}

	tag, err := QuerierFromCtx(ctx, s.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune catalogue revisions: %w", err)
	}
	return tag.RowsAffected(), nil
}
