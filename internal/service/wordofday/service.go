// Package wordofday picks one word from the word pool per calendar day and
// keeps it in the local store so every caller sees the same word all day.
package wordofday

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

type wordPool interface {
	Words() []string
}

type cache interface {
	WordOfDay(ctx context.Context, date time.Time) (string, error)
	SetWordOfDay(ctx context.Context, date time.Time, word string) error
	DeleteWordOfDay(ctx context.Context, date time.Time) error
}

type definitionLookup interface {
	LookupDefinition(ctx context.Context, word string) (string, error)
}

// Word is the word of one day.
type Word struct {
	Date       string `json:"date"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Service serves the word of the day.
type Service struct {
	log        *slog.Logger
	pool       wordPool
	cache      cache
	dictionary definitionLookup
	loc        *time.Location
	now        func() time.Time
}

// NewService creates a Service. Days start at midnight in loc; dictionary
// may be nil.
func NewService(logger *slog.Logger, pool wordPool, cache cache, dictionary definitionLookup, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		log:        logger.With("service", "wordofday"),
		pool:       pool,
		cache:      cache,
		dictionary: dictionary,
		loc:        loc,
		now:        time.Now,
	}
}

// Today returns the word of the current day, choosing and caching it on
// first use. The definition is looked up best effort.
func (s *Service) Today(ctx context.Context) (*Word, error) {
	day := s.today()

	word, err := s.cache.WordOfDay(ctx, day)
	switch {
	case err == nil && word != "":
	case err == nil || errors.Is(err, domain.ErrNotFound):
		if word, err = s.choose(ctx, day); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &Word{
		Date:       day.Format(time.DateOnly),
		Word:       word,
		Definition: s.lookupDefinition(ctx, word),
	}, nil
}

// Rotate chooses today's word ahead of the first request and drops the
// cached word of the previous day.
func (s *Service) Rotate(ctx context.Context) error {
	day := s.today()

	word, err := s.choose(ctx, day)
	if err != nil {
		return err
	}
	if err := s.cache.DeleteWordOfDay(ctx, day.AddDate(0, 0, -1)); err != nil {
		s.log.WarnContext(ctx, "drop previous word of the day", slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "word of the day rotated",
		slog.String("date", day.Format(time.DateOnly)),
		slog.String("word", word),
	)
	return nil
}

func (s *Service) choose(ctx context.Context, day time.Time) (string, error) {
	word, err := Pick(s.pool.Words(), day)
	if err != nil {
		return "", err
	}
	if err := s.cache.SetWordOfDay(ctx, day, word); err != nil {
		// The pick is deterministic, so an uncached word is still stable.
		s.log.WarnContext(ctx, "cache word of the day", slog.String("error", err.Error()))
	}
	return word, nil
}

func (s *Service) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *Service) lookupDefinition(ctx context.Context, word string) string {
	if s.dictionary == nil {
		return ""
	}
	def, err := s.dictionary.LookupDefinition(ctx, word)
	if err != nil {
		s.log.WarnContext(ctx, "definition lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return def
}

// Pick deterministically maps a calendar day onto one of words.
func Pick(words []string, day time.Time) (string, error) {
	if len(words) == 0 {
		return "", fmt.Errorf("word pool is empty: %w", domain.ErrNotFound)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(day.Format(time.DateOnly)))
	return words[h.Sum32()%uint32(len(words))], nil
}
