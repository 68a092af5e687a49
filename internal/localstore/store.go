// Package localstore keeps per-device state: each user's catalogue and random
// trials, the shared sound preference and the cached word of the day.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// GuestKey is the user key of anonymous use.
const GuestKey = "guest"

const (
	catalogueKeyPrefix = "catalogue_"
	trialsKeyPrefix    = "random_trials_"
	wordOfDayKeyPrefix = "word_of_the_day_"
	soundEnabledKey    = "sound_enabled"
)

type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store maps domain values onto keys of a key-value backend.
type Store struct {
	kv  kv
	log *slog.Logger
	now func() time.Time
}

// New creates a Store over kv.
func New(kv kv, log *slog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log.With("component", "localstore"),
		now: time.Now,
	}
}

// UserKey returns the storage key segment for userID.
func UserKey(userID uuid.UUID) string {
	if userID == uuid.Nil {
		return GuestKey
	}
	return userID.String()
}

// LoadCatalogue returns the stored catalogue for userID, normalized. A user
// without stored data gets an empty catalogue.
func (s *Store) LoadCatalogue(ctx context.Context, userID uuid.UUID) (domain.Catalogue, error) {
	key := catalogueKeyPrefix + UserKey(userID)

	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Catalogue{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}

	cat, dropped, err := domain.ParseCatalogue(data, s.now())
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	if dropped > 0 {
		s.log.WarnContext(ctx, "dropped malformed catalogue records",
			slog.String("key", key),
			slog.Int("dropped", dropped),
		)
	}
	cat, dupes := cat.Dedupe()
	if dupes > 0 {
		s.log.WarnContext(ctx, "dropped duplicate catalogue words",
			slog.String("key", key),
			slog.Int("dropped", dupes),
		)
	}
	return cat, nil
}

// SaveCatalogue replaces the stored catalogue for userID.
func (s *Store) SaveCatalogue(ctx context.Context, userID uuid.UUID, cat domain.Catalogue) error {
	if cat == nil {
		cat = domain.Catalogue{}
	}
	data, err := json.Marshal(cat)
	if err != nil {
		return fmt.Errorf("encode catalogue: %w", err)
	}
	if err := s.kv.Set(ctx, catalogueKeyPrefix+UserKey(userID), data); err != nil {
		return fmt.Errorf("save catalogue: %w", err)
	}
	return nil
}

// LoadTrials returns the random-mode trials for userID.
func (s *Store) LoadTrials(ctx context.Context, userID uuid.UUID) (domain.RandomTrials, error) {
	data, err := s.kv.Get(ctx, trialsKeyPrefix+UserKey(userID))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RandomTrials{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load random trials: %w", err)
	}

	trials := domain.RandomTrials{}
	if err := json.Unmarshal(data, &trials); err != nil {
		s.log.WarnContext(ctx, "discarding unreadable random trials", slog.String("error", err.Error()))
		return domain.RandomTrials{}, nil
	}
	return trials, nil
}

// SaveTrials replaces the random-mode trials for userID.
func (s *Store) SaveTrials(ctx context.Context, userID uuid.UUID, trials domain.RandomTrials) error {
	data, err := json.Marshal(trials)
	if err != nil {
		return fmt.Errorf("encode random trials: %w", err)
	}
	if err := s.kv.Set(ctx, trialsKeyPrefix+UserKey(userID), data); err != nil {
		return fmt.Errorf("save random trials: %w", err)
	}
	return nil
}

// SoundEnabled returns the shared sound preference, or fallback when unset.
func (s *Store) SoundEnabled(ctx context.Context, fallback bool) (bool, error) {
	data, err := s.kv.Get(ctx, soundEnabledKey)
	if errors.Is(err, domain.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("load sound preference: %w", err)
	}
	enabled, err := strconv.ParseBool(string(data))
	if err != nil {
		return fallback, nil
	}
	return enabled, nil
}

// SetSoundEnabled stores the shared sound preference.
func (s *Store) SetSoundEnabled(ctx context.Context, enabled bool) error {
	if err := s.kv.Set(ctx, soundEnabledKey, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("save sound preference: %w", err)
	}
	return nil
}

// WordOfDay returns the cached word for the given date or domain.ErrNotFound.
func (s *Store) WordOfDay(ctx context.Context, date time.Time) (string, error) {
	data, err := s.kv.Get(ctx, wordOfDayKey(date))
	if err != nil {
		return "", fmt.Errorf("load word of the day: %w", err)
	}
	return string(data), nil
}

// SetWordOfDay caches word for the given date.
func (s *Store) SetWordOfDay(ctx context.Context, date time.Time, word string) error {
	if err := s.kv.Set(ctx, wordOfDayKey(date), []byte(word)); err != nil {
		return fmt.Errorf("save word of the day: %w", err)
	}
	return nil
}

// DeleteWordOfDay drops the cached word for the given date.
func (s *Store) DeleteWordOfDay(ctx context.Context, date time.Time) error {
	return s.kv.Delete(ctx, wordOfDayKey(date))
}

func wordOfDayKey(date time.Time) string {
	return wordOfDayKeyPrefix + date.Format(time.DateOnly)
}
