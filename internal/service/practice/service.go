// Package practice runs practice rounds: it picks the next word, scores
// answers, hands out hints and keeps the session counters of each user.
package practice

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/workspace"
)

type workspaces interface {
	Do(ctx context.Context, userID uuid.UUID, fn func(ws *workspace.Workspace) error) error
}

type wordPool interface {
	Words() []string
}

type pusher interface {
	Push(ctx context.Context, userID uuid.UUID, cat domain.Catalogue)
}

type speaker interface {
	Speak(ctx context.Context, word string)
}

type soundPrefs interface {
	SoundEnabled(ctx context.Context, fallback bool) (bool, error)
	SetSoundEnabled(ctx context.Context, enabled bool) error
}

// Options tunes a Service.
type Options struct {
	// Seed fixes the selection RNG; 0 seeds from the clock.
	Seed uint64
	// SoundDefault applies while no sound preference has been stored.
	SoundDefault bool
}

// Service provides the practice operations.
type Service struct {
	workspaces workspaces
	pool       wordPool
	sync       pusher
	speaker    speaker
	sound      soundPrefs
	opts       Options
	rnd        *lockedRand
	log        *slog.Logger
}

// NewService creates a practice Service.
func NewService(
	log *slog.Logger,
	workspaces workspaces,
	pool wordPool,
	sync pusher,
	speaker speaker,
	sound soundPrefs,
	opts Options,
) *Service {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Service{
		workspaces: workspaces,
		pool:       pool,
		sync:       sync,
		speaker:    speaker,
		sound:      sound,
		opts:       opts,
		rnd:        &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))},
		log:        log.With("service", "practice"),
	}
}

// lockedRand makes a *rand.Rand safe for concurrent users.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
