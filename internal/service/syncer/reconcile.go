package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// Outcome says which branch of the reconcile rule produced a Result.
type Outcome string

const (
	// OutcomeLocal: no signed-in user or no remote backend; nothing was called.
	OutcomeLocal Outcome = "local"
	// OutcomeRemote: the remote catalogue was non-empty and wins.
	OutcomeRemote Outcome = "remote"
	// OutcomeSeeded: the remote was empty and the local catalogue was uploaded.
	OutcomeSeeded Outcome = "seeded"
	// OutcomeEmpty: both sides were empty.
	OutcomeEmpty Outcome = "empty"
	// OutcomeFallback: a fetch or upload failed; the local catalogue stands.
	OutcomeFallback Outcome = "fallback"
)

// FetchFunc reads the user's remote catalogue. domain.ErrNotFound means empty.
type FetchFunc func(ctx context.Context) (domain.Catalogue, error)

// UploadFunc writes a catalogue to the remote store.
type UploadFunc func(ctx context.Context, cat domain.Catalogue) error

// Result is the effective catalogue after reconciling.
type Result struct {
	Catalogue domain.Catalogue
	Outcome   Outcome
	// Err is the transport failure behind OutcomeFallback.
	Err error
}

// ReplacesLocal reports whether the local copy must be overwritten.
func (r Result) ReplacesLocal() bool { return r.Outcome == OutcomeRemote }

// Reconcile merges the local catalogue with the remote one: a non-empty
// remote wins, an empty remote is seeded once from a non-empty local. Any
// failure, including a remote catalogue with duplicate words, falls back to
// local. It never returns an error; failures are
// logged and reported in Result.Err.
func Reconcile(ctx context.Context, log *slog.Logger, authenticated bool, local domain.Catalogue, fetch FetchFunc, upload UploadFunc) Result {
	if !authenticated || fetch == nil {
		return Result{Catalogue: local, Outcome: OutcomeLocal}
	}

	remote, err := fetch(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		remote = nil
	case err != nil:
		log.WarnContext(ctx, "remote fetch failed, keeping local catalogue",
			slog.Int("local_words", len(local)),
			slog.String("error", err.Error()),
		)
		return Result{Catalogue: local, Outcome: OutcomeFallback, Err: err}
	}

	if err := remote.Validate(); err != nil {
		err = fmt.Errorf("remote catalogue: %w: %w", domain.ErrTransport, err)
		log.WarnContext(ctx, "remote catalogue rejected, keeping local catalogue",
			slog.Int("local_words", len(local)),
			slog.String("error", err.Error()),
		)
		return Result{Catalogue: local, Outcome: OutcomeFallback, Err: err}
	}

	if len(remote) > 0 {
		return Result{Catalogue: remote, Outcome: OutcomeRemote}
	}

	if len(local) == 0 {
		return Result{Catalogue: domain.Catalogue{}, Outcome: OutcomeEmpty}
	}

	if upload == nil {
		return Result{Catalogue: local, Outcome: OutcomeLocal}
	}
	if err := upload(ctx, local); err != nil {
		log.WarnContext(ctx, "remote seed upload failed",
			slog.Int("local_words", len(local)),
			slog.String("error", err.Error()),
		)
		return Result{Catalogue: local, Outcome: OutcomeFallback, Err: err}
	}

	log.InfoContext(ctx, "remote catalogue seeded from local", slog.Int("words", len(local)))
	return Result{Catalogue: local, Outcome: OutcomeSeeded}
}
