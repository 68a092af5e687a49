package engine

import (
	"math"
	"strings"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

const (
	revealDecayStep = 0.2
	minRevealDecay  = 0.2

	highScorePenaltyFrom = 60
)

// Attempt is one answer given for a catalogue word.
type Attempt struct {
	Correct bool
	// Answer is the text the user typed. Only used for incorrect attempts.
	Answer string
	// RevealCount is how many times the answer was revealed before this
	// attempt. It is supplied by the caller and not tracked here.
	RevealCount int
	// FirstAttemptInRound is true when no other answer was given for the
	// word since it was selected.
	FirstAttemptInRound bool
}

// ApplyAttempt mutates entry according to the scoring rules. It does not
// persist anything.
func ApplyAttempt(entry *domain.WordEntry, a Attempt) {
	if entry.Mistakes == nil {
		entry.Mistakes = make(map[string]int)
	}

	if a.Correct {
		entry.Streak++
		reward := basePoints(entry.Streak) * revealDecay(a.RevealCount)
		entry.Score = math.Min(entry.Score+reward, domain.MaxScore)
		if a.FirstAttemptInRound {
			entry.CorrectFirstTryCount++
		}
		entry.TotalAttempts++
		return
	}

	entry.Streak = 0
	penalty := 1.0
	if entry.Score > highScorePenaltyFrom {
		penalty = 2
	}
	entry.Score = math.Max(entry.Score-penalty, domain.MinScore)

	variant := strings.ToLower(strings.TrimSpace(a.Answer))
	if variant != "" && !domain.SameWord(variant, entry.Word) {
		entry.Mistakes[variant]++
	}
}

// basePoints is evaluated after the streak has been incremented.
func basePoints(streak int) float64 {
	switch {
	case streak >= 10:
		return 5
	case streak >= 5:
		return 2
	default:
		return 1
	}
}

func revealDecay(reveals int) float64 {
	return math.Max(1-revealDecayStep*float64(max(reveals, 0)), minRevealDecay)
}
