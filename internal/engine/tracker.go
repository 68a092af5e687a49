package engine

import (
	"math"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// Tracker counts outcomes within one practice session.
type Tracker struct {
	correct int
	wrong   int
}

// Record adds one outcome.
func (t *Tracker) Record(correct bool) {
	if correct {
		t.correct++
		return
	}
	t.wrong++
}

// Reset starts a new session.
func (t *Tracker) Reset() {
	t.correct, t.wrong = 0, 0
}

// Stats returns a snapshot of the counters.
func (t *Tracker) Stats() domain.SessionStats {
	total := t.correct + t.wrong
	acc := 0
	if total > 0 {
		acc = int(math.Round(float64(t.correct) / float64(total) * 100))
	}
	return domain.SessionStats{
		Correct:  t.correct,
		Wrong:    t.wrong,
		Total:    total,
		Accuracy: acc,
	}
}
