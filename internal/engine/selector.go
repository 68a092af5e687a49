package engine

import (
	"github.com/samber/lo"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// weightCeiling makes a mastered word (score 100) still drawable with weight 1.
const weightCeiling = domain.MaxScore + 1

// Rand is the randomness the selector needs. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Weight returns the selection weight of an entry: lower scores weigh more.
func Weight(e domain.WordEntry) float64 {
	return weightCeiling - e.Score
}

// SelectWeighted draws one index from entries with probability proportional
// to Weight. Repeats across calls are allowed.
func SelectWeighted(entries []domain.WordEntry, rnd Rand) (int, error) {
	if len(entries) == 0 {
		return -1, domain.NewValidationError("catalogue", "no words to practice")
	}
	if len(entries) == 1 {
		return 0, nil
	}

	cumulative := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		total += Weight(e)
		cumulative[i] = total
	}

	draw := rnd.Float64() * total
	for i, c := range cumulative {
		if c > draw {
			return i, nil
		}
	}
	// Floating point rounding can leave the draw at the very end.
	return len(entries) - 1, nil
}

// SelectUniform draws one word from pool with equal probability.
func SelectUniform(pool []string, rnd Rand) (string, error) {
	if len(pool) == 0 {
		return "", domain.NewValidationError("pool", "random word pool is empty")
	}
	return pool[rnd.IntN(len(pool))], nil
}

// FilterByWords returns the catalogue entries whose words appear in words,
// compared case-insensitively. Unknown words are ignored.
func FilterByWords(cat domain.Catalogue, words []string) []domain.WordEntry {
	keys := lo.Uniq(lo.Map(words, func(w string, _ int) string { return domain.WordKey(w) }))
	return lo.Filter(cat, func(e domain.WordEntry, _ int) bool {
		return lo.Contains(keys, domain.WordKey(e.Word))
	})
}
