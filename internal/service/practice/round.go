package practice

import (
	"context"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/engine"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

// Hint returns the progressive hint for the current round.
func (s *Service) Hint(ctx context.Context) (*HintResult, error) {
	var res *HintResult
	err := s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		r := ws.Round
		if r == nil {
			return domain.NewStateError("no active round")
		}
		res = &HintResult{
			Mode:        r.Mode,
			CoveredForm: engine.CoveredForm(r.Word),
			Hint:        engine.ProgressiveHint(r.Word, r.Attempts),
			Attempts:    r.Attempts,
		}
		return nil
	})
	return res, err
}

// RevealWord unmasks the current round's word. Reveals are not counted here;
// callers report them through AttemptInput.RevealCount.
func (s *Service) RevealWord(ctx context.Context) (*Reveal, error) {
	var res *Reveal
	err := s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		r := ws.Round
		if r == nil {
			return domain.NewStateError("no active round")
		}
		res = &Reveal{Word: r.Word, Syllables: engine.Syllables(r.Word)}
		if e := ws.Catalogue.Find(r.Word); e != nil && r.Mode != domain.ModeRandom {
			res.Definition = e.Definition
		}
		return nil
	})
	return res, err
}

// Session returns the counters of the running session.
func (s *Service) Session(ctx context.Context) (domain.SessionStats, error) {
	var stats domain.SessionStats
	err := s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		stats = ws.Tracker.Stats()
		return nil
	})
	return stats, err
}

// Restart zeroes the session counters and drops the current round.
func (s *Service) Restart(ctx context.Context) error {
	return s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		ws.Restart()
		return nil
	})
}
