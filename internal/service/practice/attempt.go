package practice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/engine"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

// RecordAttempt scores one answer. In random mode the answer updates the
// word's RandomTrial; otherwise it scores the matching catalogue entry, which
// must exist. A catalogue word cannot be scored while a random word is still
// unanswered. A wrong answer returns the next progressive hint.
func (s *Service) RecordAttempt(ctx context.Context, input AttemptInput) (*AttemptResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	userID := ctxutil.UserOrGuest(ctx)

	var (
		result   *AttemptResult
		snapshot domain.Catalogue
	)
	err := s.workspaces.Do(ctx, userID, func(ws *workspace.Workspace) error {
		var err error
		if r := ws.Round; r != nil && r.Mode == domain.ModeRandom {
			if input.Word == "" || domain.SameWord(input.Word, r.Word) {
				result, err = s.recordRandom(ctx, ws, input)
				return err
			}
			if !r.Done {
				return domain.NewStateError("random word %q is still unanswered", r.Word)
			}
		}
		result, err = s.recordCatalogue(ctx, ws, input)
		if err != nil {
			return err
		}
		if ws.Authenticated() {
			snapshot = ws.Catalogue.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "attempt recorded",
		slog.String("user_id", userID.String()),
		slog.String("word", result.Word),
		slog.Bool("correct", result.Correct),
		slog.Int("attempts", result.Attempts),
	)

	if snapshot != nil && s.sync != nil {
		s.sync.Push(ctx, userID, snapshot)
	}
	return result, nil
}

func (s *Service) recordCatalogue(ctx context.Context, ws *workspace.Workspace, input AttemptInput) (*AttemptResult, error) {
	word := input.Word
	if word == "" && ws.Round != nil && ws.Round.Mode != domain.ModeRandom {
		word = ws.Round.Word
	}
	if domain.WordKey(word) == "" {
		return nil, domain.NewValidationError("word", "required when no round is active")
	}

	idx := ws.Catalogue.Index(word)
	if idx < 0 {
		return nil, domain.NewStateError("word %q is not in the catalogue", word)
	}
	entry := &ws.Catalogue[idx]

	round := s.roundFor(ws, entry.Word)
	correct := input.isCorrect(entry.Word)
	before := entry.Clone()

	engine.ApplyAttempt(entry, engine.Attempt{
		Correct:             correct,
		Answer:              input.Answer,
		RevealCount:         input.RevealCount,
		FirstAttemptInRound: round.Attempts == 0,
	})

	if err := ws.SaveCatalogue(ctx); err != nil {
		ws.Catalogue[idx] = before
		return nil, fmt.Errorf("save catalogue: %w", err)
	}

	round.Attempts++
	round.Done = round.Done || correct
	ws.Tracker.Record(correct)

	res := &AttemptResult{
		Mode:     round.Mode,
		Word:     entry.Word,
		Correct:  correct,
		Score:    entry.Score,
		Streak:   entry.Streak,
		Attempts: round.Attempts,
		Session:  ws.Tracker.Stats(),
	}
	if !correct {
		res.Hint = engine.ProgressiveHint(entry.Word, round.Attempts)
	}
	return res, nil
}

func (s *Service) recordRandom(ctx context.Context, ws *workspace.Workspace, input AttemptInput) (*AttemptResult, error) {
	round := ws.Round
	if round.Done {
		return nil, domain.NewStateError("random word %q was already answered; select the next word", round.Word)
	}
	if ws.Trials == nil {
		ws.Trials = domain.RandomTrials{}
	}

	correct := input.isCorrect(round.Word)
	trial, ok := ws.Trials.Get(round.Word)
	if !ok {
		trial = domain.RandomTrial{Word: round.Word}
	}
	before := trial
	trial.Attempts++
	trial.Correct = correct
	ws.Trials.Put(trial)

	if err := ws.SaveTrials(ctx); err != nil {
		ws.Trials.Put(before)
		return nil, fmt.Errorf("save random trials: %w", err)
	}

	round.Attempts++
	round.Done = round.Done || correct
	ws.Tracker.Record(correct)

	res := &AttemptResult{
		Mode:     domain.ModeRandom,
		Word:     round.Word,
		Correct:  correct,
		Attempts: round.Attempts,
		Session:  ws.Tracker.Stats(),
	}
	if !correct {
		res.Hint = engine.ProgressiveHint(round.Word, round.Attempts)
	}
	return res, nil
}

// roundFor returns the round for word, starting a fresh one when the current
// round is for another word. Answers after a correct one stay in the same
// round, so they never count as first attempts.
func (s *Service) roundFor(ws *workspace.Workspace, word string) *workspace.Round {
	r := ws.Round
	if r != nil && r.Mode != domain.ModeRandom && domain.SameWord(r.Word, word) {
		return r
	}

	mode := ws.Mode()
	var custom []string
	if r != nil {
		custom = r.Custom
	}
	if mode == domain.ModeRandom {
		mode = domain.ModeCatalogue
	}
	ws.Round = &workspace.Round{Mode: mode, Word: word, Custom: custom}
	return ws.Round
}
