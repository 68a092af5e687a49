package practice

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/workspace"
	"github.com/heartmarshall/wordpractice/pkg/ctxutil"
)

const (
	// MasteredScore is the display threshold for a mastered word.
	MasteredScore = 80

	topMistakesLimit = 10
)

// Stats summarises the caller's catalogue.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var out *Stats
	err := s.workspaces.Do(ctx, ctxutil.UserOrGuest(ctx), func(ws *workspace.Workspace) error {
		out = buildStats(ws.Catalogue)
		out.Session = ws.Tracker.Stats()
		return nil
	})
	return out, err
}

func buildStats(cat domain.Catalogue) *Stats {
	words := lo.Map(cat, func(e domain.WordEntry, _ int) WordStat {
		return WordStat{
			Word:             e.Word,
			Score:            e.Score,
			Streak:           e.Streak,
			TotalAttempts:    e.TotalAttempts,
			FirstTryAccuracy: e.FirstTryAccuracy(),
			Mastered:         e.Score >= MasteredScore,
		}
	})

	attempts := lo.SumBy(cat, func(e domain.WordEntry) int { return e.TotalAttempts })
	firstTry := lo.SumBy(cat, func(e domain.WordEntry) int { return e.CorrectFirstTryCount })

	st := &Stats{
		TotalWords:    len(cat),
		Mastered:      lo.CountBy(words, func(w WordStat) bool { return w.Mastered }),
		TotalAttempts: attempts,
		Words:         words,
		TopMistakes:   topMistakes(cat, topMistakesLimit),
	}
	if len(cat) > 0 {
		total := lo.SumBy(cat, func(e domain.WordEntry) float64 { return e.Score })
		st.AverageScore = math.Round(total/float64(len(cat))*10) / 10
	}
	if attempts > 0 {
		st.FirstTryAccuracy = int(math.Round(float64(firstTry) / float64(attempts) * 100))
	}
	return st
}

func topMistakes(cat domain.Catalogue, limit int) []MistakeStat {
	all := lo.FlatMap(cat, func(e domain.WordEntry, _ int) []MistakeStat {
		return lo.MapToSlice(e.Mistakes, func(variant string, n int) MistakeStat {
			return MistakeStat{Word: e.Word, Variant: variant, Count: n}
		})
	})
	slices.SortFunc(all, func(a, b MistakeStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Word, b.Word); c != 0 {
			return c
		}
		return cmp.Compare(a.Variant, b.Variant)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
