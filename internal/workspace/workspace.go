// Package workspace holds the in-memory state of each active user: the
// catalogue, random trials, the current practice round and session counters.
// Every operation on a user's state runs under that user's lock.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
	"github.com/heartmarshall/wordpractice/internal/engine"
)

type localStore interface {
	LoadCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error)
	SaveCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error
	LoadTrials(ctx context.Context, userID uuid.UUID) (domain.RandomTrials, error)
	SaveTrials(ctx context.Context, userID uuid.UUID, trials domain.RandomTrials) error
}

// Round is the word currently being practiced.
type Round struct {
	Mode     domain.PracticeMode
	Word     string
	Attempts int
	// Done is set once the word was answered correctly.
	Done bool
	// Custom is the word list of a custom-mode sequence.
	Custom []string
}

// Workspace is one user's state. Fields are only accessed inside Registry.Do.
type Workspace struct {
	UserID    uuid.UUID
	Catalogue domain.Catalogue
	Trials    domain.RandomTrials
	Tracker   engine.Tracker
	Round     *Round

	mode       domain.PracticeMode
	generation uint64
	store      localStore
	gens       *atomic.Uint64
}

// Authenticated reports whether the workspace belongs to a signed-in user.
func (w *Workspace) Authenticated() bool { return w.UserID != uuid.Nil }

// Generation changes with every local change to the catalogue. Values are
// drawn from a registry-wide counter, so a workspace reloaded after eviction
// never repeats a generation seen before.
func (w *Workspace) Generation() uint64 { return w.generation }

func (w *Workspace) advance() { w.generation = w.gens.Add(1) }

// SaveCatalogue persists the catalogue and advances the generation.
func (w *Workspace) SaveCatalogue(ctx context.Context) error {
	if err := w.store.SaveCatalogue(ctx, w.UserID, w.Catalogue); err != nil {
		return err
	}
	w.advance()
	return nil
}

// ReplaceCatalogue swaps in cat, persists it and advances the generation.
// On a storage failure the previous catalogue is kept.
func (w *Workspace) ReplaceCatalogue(ctx context.Context, cat domain.Catalogue) error {
	if err := w.store.SaveCatalogue(ctx, w.UserID, cat); err != nil {
		return err
	}
	w.Catalogue = cat
	w.advance()
	if w.Round != nil && w.Round.Mode != domain.ModeRandom && w.Catalogue.Find(w.Round.Word) == nil {
		w.Round = nil
	}
	return nil
}

// SaveTrials persists the random trials.
func (w *Workspace) SaveTrials(ctx context.Context) error {
	return w.store.SaveTrials(ctx, w.UserID, w.Trials)
}

// StartSequence switches to mode. Changing mode starts a new session.
func (w *Workspace) StartSequence(mode domain.PracticeMode) {
	if w.mode != mode {
		w.Tracker.Reset()
		w.mode = mode
	}
}

// Restart resets the session counters and drops the current round.
func (w *Workspace) Restart() {
	w.Tracker.Reset()
	w.Round = nil
}

// Mode returns the mode of the running sequence.
func (w *Workspace) Mode() domain.PracticeMode { return w.mode }

// Registry owns the workspaces of all users seen by this process.
type Registry struct {
	store localStore
	log   *slog.Logger
	now   func() time.Time
	gens  atomic.Uint64

	mu     sync.Mutex
	spaces map[uuid.UUID]*entry
}

type entry struct {
	mu     sync.Mutex
	ws     *Workspace
	loaded bool
	// last is guarded by Registry.mu.
	last time.Time
}

// NewRegistry creates an empty Registry backed by store.
func NewRegistry(store localStore, log *slog.Logger) *Registry {
	return &Registry{
		store:  store,
		log:    log.With("component", "workspace"),
		now:    time.Now,
		spaces: make(map[uuid.UUID]*entry),
	}
}

// Do runs fn with exclusive access to the workspace of userID (uuid.Nil for
// the guest), loading it from the local store on first use.
func (r *Registry) Do(ctx context.Context, userID uuid.UUID, fn func(ws *Workspace) error) error {
	e := r.entry(userID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		if err := r.load(ctx, e.ws); err != nil {
			return err
		}
		e.loaded = true
	}
	return fn(e.ws)
}

// Evict forgets the in-memory state of userID; the next Do reloads it.
func (r *Registry) Evict(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spaces, userID)
}

// EvictIdle forgets every workspace not used for longer than ttl and returns
// how many were dropped. A workspace inside Do is never dropped.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, e := range r.spaces {
		if now.Sub(e.last) <= ttl || !e.mu.TryLock() {
			continue
		}
		delete(r.spaces, id)
		e.mu.Unlock()
		evicted++
	}
	return evicted
}

// Sweep runs EvictIdle every interval until ctx is cancelled.
func (r *Registry) Sweep(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(ttl); n > 0 {
				r.log.DebugContext(ctx, "idle workspaces evicted", slog.Int("count", n))
			}
		}
	}
}

// Len returns the number of workspaces held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}

func (r *Registry) entry(userID uuid.UUID) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.spaces[userID]
	if !ok {
		e = &entry{ws: &Workspace{
			UserID:     userID,
			mode:       domain.ModeCatalogue,
			store:      r.store,
			gens:       &r.gens,
			generation: r.gens.Add(1),
		}}
		r.spaces[userID] = e
	}
	e.last = r.now()
	return e
}

func (r *Registry) load(ctx context.Context, ws *Workspace) error {
	cat, err := r.store.LoadCatalogue(ctx, ws.UserID)
	if err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}
	trials, err := r.store.LoadTrials(ctx, ws.UserID)
	if err != nil {
		return fmt.Errorf("load workspace: %w", err)
	}
	ws.Catalogue = cat
	ws.Trials = trials

	r.log.DebugContext(ctx, "workspace loaded",
		slog.String("user_id", ws.UserID.String()),
		slog.Int("words", len(cat)),
	)
	return nil
}
