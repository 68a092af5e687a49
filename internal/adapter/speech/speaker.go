// Package speech announces practice words. Playback belongs to the client:
// the speaker resolves a pronunciation recording and publishes it in the log
// stream, and never blocks the caller.
package speech

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const lookupTimeout = 5 * time.Second

type audioLookup interface {
	LookupAudio(ctx context.Context, word string) (string, error)
}

// Speaker is a fire-and-forget announcer.
type Speaker struct {
	lookup audioLookup
	log    *slog.Logger
	wg     sync.WaitGroup
}

// NewSpeaker creates a Speaker. lookup may be nil, in which case words are
// announced without a recording.
func NewSpeaker(lookup audioLookup, logger *slog.Logger) *Speaker {
	return &Speaker{
		lookup: lookup,
		log:    logger.With("adapter", "speech"),
	}
}

// Speak announces word in the background. The announcement outlives the
// request that triggered it.
func (s *Speaker) Speak(ctx context.Context, word string) {
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.speak(ctx, word)
	}()
}

// Wait blocks until every pending announcement has finished.
func (s *Speaker) Wait() {
	s.wg.Wait()
}

func (s *Speaker) speak(ctx context.Context, word string) {
	audioURL := ""
	if s.lookup != nil {
		ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
		url, err := s.lookup.LookupAudio(ctx, word)
		cancel()
		if err != nil {
			s.log.DebugContext(ctx, "pronunciation lookup failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
		}
		audioURL = url
	}

	s.log.InfoContext(ctx, "speak",
		slog.String("word", word),
		slog.String("audio_url", audioURL),
	)
}
