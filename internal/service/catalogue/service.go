// Package catalogue manages the words of a user's catalogue: adding and
// removing words, editing definitions and moving the whole catalogue in and
// out as JSON or XLSX.
package catalogue

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/workspace"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type workspaces interface {
	Do(ctx context.Context, userID uuid.UUID, fn func(ws *workspace.Workspace) error) error
}

type pusher interface {
	Push(ctx context.Context, userID uuid.UUID, cat domain.Catalogue)
}

type definitionLookup interface {
	LookupDefinition(ctx context.Context, word string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements catalogue management.
type Service struct {
	log        *slog.Logger
	workspaces workspaces
	sync       pusher
	dictionary definitionLookup
	now        func() time.Time
}

// NewService creates a catalogue Service. sync and dictionary may be nil.
func NewService(
	logger *slog.Logger,
	workspaces workspaces,
	sync pusher,
	dictionary definitionLookup,
) *Service {
	return &Service{
		log:        logger.With("service", "catalogue"),
		workspaces: workspaces,
		sync:       sync,
		dictionary: dictionary,
		now:        time.Now,
	}
}

// mutate runs fn under the caller's workspace lock and pushes the resulting
// catalogue to the remote store once the lock is released.
func (s *Service) mutate(ctx context.Context, userID uuid.UUID, fn func(ws *workspace.Workspace) error) error {
	var snapshot domain.Catalogue
	err := s.workspaces.Do(ctx, userID, func(ws *workspace.Workspace) error {
		if err := fn(ws); err != nil {
			return err
		}
		if ws.Authenticated() {
			snapshot = ws.Catalogue.Clone()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if snapshot != nil && s.sync != nil {
		s.sync.Push(ctx, userID, snapshot)
	}
	return nil
}
