// Package syncer keeps a user's local catalogue and the remote store in step.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/workspace"
)

// DefaultTimeout bounds one reconcile round trip.
const DefaultTimeout = 10 * time.Second

type remoteStore interface {
	FetchCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error)
	UpsertCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error
}

type workspaces interface {
	Do(ctx context.Context, userID uuid.UUID, fn func(ws *workspace.Workspace) error) error
}

// Service runs reconciles against one remote backend.
type Service struct {
	remote     remoteStore
	workspaces workspaces
	timeout    time.Duration
	log        *slog.Logger
}

// NewService creates a sync Service. remote may be nil when no backend is
// configured; every sync then keeps the local catalogue.
func NewService(log *slog.Logger, workspaces workspaces, remote remoteStore, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		remote:     remote,
		workspaces: workspaces,
		timeout:    timeout,
		log:        log.With("service", "syncer"),
	}
}

// Enabled reports whether a remote backend is configured.
func (s *Service) Enabled() bool { return s.remote != nil }

// Sync reconciles the user's workspace with the remote store. The network
// calls run without holding the workspace; a remote result is applied only
// if the catalogue did not change in the meantime. The returned error is
// non-nil only when loading or persisting local state fails.
func (s *Service) Sync(ctx context.Context, userID uuid.UUID) (Result, error) {
	var (
		snapshot      domain.Catalogue
		generation    uint64
		authenticated bool
	)
	err := s.workspaces.Do(ctx, userID, func(ws *workspace.Workspace) error {
		snapshot = ws.Catalogue.Clone()
		generation = ws.Generation()
		authenticated = ws.Authenticated()
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("sync: %w", err)
	}

	var (
		fetch  FetchFunc
		upload UploadFunc
	)
	if s.remote != nil {
		fetch = func(ctx context.Context) (domain.Catalogue, error) {
			return s.remote.FetchCatalogue(ctx, userID)
		}
		upload = func(ctx context.Context, cat domain.Catalogue) error {
			return s.remote.UpsertCatalogue(ctx, userID, cat)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	result := Reconcile(callCtx, s.log.With("user_id", userID.String()), authenticated, snapshot, fetch, upload)
	cancel()

	if !result.ReplacesLocal() {
		return result, nil
	}

	err = s.workspaces.Do(ctx, userID, func(ws *workspace.Workspace) error {
		if ws.Generation() != generation {
			s.log.InfoContext(ctx, "discarding stale remote catalogue",
				slog.String("user_id", userID.String()),
				slog.Uint64("fetched_at_generation", generation),
				slog.Uint64("current_generation", ws.Generation()),
			)
			result = Result{Catalogue: ws.Catalogue.Clone(), Outcome: OutcomeLocal}
			return nil
		}
		return ws.ReplaceCatalogue(ctx, result.Catalogue)
	})
	if err != nil {
		return Result{}, fmt.Errorf("sync: apply remote catalogue: %w", err)
	}

	s.log.InfoContext(ctx, "local catalogue replaced from remote",
		slog.String("user_id", userID.String()),
		slog.Int("words", len(result.Catalogue)),
	)
	return result, nil
}

// Push uploads cat for a signed-in user. Failures are logged and otherwise
// ignored; the local copy stays the record.
func (s *Service) Push(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) {
	if s.remote == nil || userID == uuid.Nil {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.remote.UpsertCatalogue(callCtx, userID, cat); err != nil {
		s.log.WarnContext(ctx, "remote push failed",
			slog.String("user_id", userID.String()),
			slog.Int("words", len(cat)),
			slog.String("error", err.Error()),
		)
	}
}
