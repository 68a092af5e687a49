package wordofday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

type rotator interface {
	Rotate(ctx context.Context) error
}

// Scheduler runs the daily rotation.
type Scheduler struct {
	cron *gocron.Scheduler
	log  *slog.Logger
}

// NewScheduler schedules r.Rotate every day at the "HH:MM" wall clock time
// at in loc.
func NewScheduler(r rotator, at string, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	log := logger.With("component", "wordofday-scheduler")

	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()

	_, err := cron.Every(1).Day().At(at).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.Rotate(ctx); err != nil {
			log.Error("word of the day rotation failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule word of the day at %q: %w", at, err)
	}

	return &Scheduler{cron: cron, log: log}, nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
	_, next := s.cron.NextRun()
	s.log.Info("word of the day scheduler started", slog.Time("next_run", next))
}

// Stop stops the scheduler and waits for a running rotation.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
