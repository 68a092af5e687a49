package practice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/engine"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

// SelectNext picks the next word for the caller and starts a new round.
// Switching mode, or switching to a different custom list, starts a new
// session.
func (s *Service) SelectNext(ctx context.Context, input SelectInput) (*Prompt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID := ctxutil.UserOrGuest(ctx)

	var prompt *Prompt
	err := s.workspaces.Do(ctx, userID, func(ws *workspace.Workspace) error {
		custom := customKeys(input)
		if ws.Mode() == domain.ModeCustom && input.Mode == domain.ModeCustom &&
			ws.Round != nil && !slices.Equal(ws.Round.Custom, custom) {
			ws.Tracker.Reset()
		}
		ws.StartSequence(input.Mode)

		var err error
		switch input.Mode {
		case domain.ModeRandom:
			prompt, err = s.selectRandom(ctx, ws)
		default:
			prompt, err = s.selectFromCatalogue(ws, input.Mode, custom)
		}
		if err != nil {
			return err
		}

		ws.Round = &workspace.Round{Mode: input.Mode, Word: prompt.Word, Custom: custom}
		prompt.Mode = input.Mode
		prompt.CoveredForm = engine.CoveredForm(prompt.Word)
		prompt.Session = ws.Tracker.Stats()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "word selected",
		slog.String("user_id", userID.String()),
		slog.String("mode", input.Mode.String()),
		slog.String("word", prompt.Word),
	)
	s.announce(ctx, prompt.Word)
	return prompt, nil
}

func (s *Service) selectFromCatalogue(ws *workspace.Workspace, mode domain.PracticeMode, custom []string) (*Prompt, error) {
	candidates := []domain.WordEntry(ws.Catalogue)
	if mode == domain.ModeCustom {
		candidates = engine.FilterByWords(ws.Catalogue, custom)
		if len(candidates) == 0 {
			return nil, domain.NewValidationError("words", "none of the words are in the catalogue")
		}
	}

	idx, err := engine.SelectWeighted(candidates, s.rnd)
	if err != nil {
		return nil, err
	}
	e := candidates[idx]
	return &Prompt{
		Word:       e.Word,
		Definition: e.Definition,
		Score:      e.Score,
		Streak:     e.Streak,
	}, nil
}

func (s *Service) selectRandom(ctx context.Context, ws *workspace.Workspace) (*Prompt, error) {
	word, err := engine.SelectUniform(s.pool.Words(), s.rnd)
	if err != nil {
		return nil, err
	}

	if ws.Trials == nil {
		ws.Trials = domain.RandomTrials{}
	}
	ws.Trials.Reset(word)
	if err := ws.SaveTrials(ctx); err != nil {
		return nil, fmt.Errorf("save random trials: %w", err)
	}
	return &Prompt{Word: word}, nil
}

// announce speaks word when sound is on. It never blocks the caller.
func (s *Service) announce(ctx context.Context, word string) {
	if s.speaker == nil {
		return
	}
	if !s.soundOn(ctx) {
		return
	}
	s.speaker.Speak(context.WithoutCancel(ctx), word)
}

func customKeys(input SelectInput) []string {
	if input.Mode != domain.ModeCustom {
		return nil
	}
	keys := make([]string, 0, len(input.Words))
	for _, w := range input.Words {
		if k := domain.WordKey(w); k != "" && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return keys
}
