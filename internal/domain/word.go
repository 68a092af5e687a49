package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	MinScore = 0
	MaxScore = 100

	// DefaultInterval is the reserved review interval (days) given to new entries.
	DefaultInterval = 1.0
)

// WordEntry is one word in a user's catalogue together with its practice history.
type WordEntry struct {
	Word                 string         `json:"word"`
	Definition           string         `json:"definition"`
	Score                float64        `json:"score"`
	Streak               int            `json:"streak"`
	TotalAttempts        int            `json:"totalAttempts"`
	CorrectFirstTryCount int            `json:"correctFirstTryCount"`
	Mistakes             map[string]int `json:"mistakes"`
	DateAdded            time.Time      `json:"dateAdded"`

	// NextReview and Interval are reserved for a future scheduler. They are
	// initialised on creation and never advanced.
	NextReview *time.Time `json:"nextReview,omitempty"`
	Interval   *float64   `json:"interval,omitempty"`
}

// NewWordEntry creates a fully populated entry for a freshly added word.
func NewWordEntry(word, definition string, now time.Time) WordEntry {
	e := WordEntry{
		Word:       strings.TrimSpace(word),
		Definition: strings.TrimSpace(definition),
		DateAdded:  now.UTC(),
	}
	e.Normalize(now)
	return e
}

// Normalize backfills missing fields and clamps out-of-range values so the
// entry satisfies the catalogue invariants. It is idempotent.
func (e *WordEntry) Normalize(now time.Time) {
	e.Word = strings.TrimSpace(e.Word)

	if math.IsNaN(e.Score) || e.Score < MinScore {
		e.Score = MinScore
	}
	if e.Score > MaxScore {
		e.Score = MaxScore
	}
	e.Streak = max(e.Streak, 0)
	e.TotalAttempts = max(e.TotalAttempts, 0)
	e.CorrectFirstTryCount = max(e.CorrectFirstTryCount, 0)

	if e.Mistakes == nil {
		e.Mistakes = make(map[string]int)
	}
	if e.DateAdded.IsZero() {
		e.DateAdded = now.UTC()
	}
	if e.NextReview == nil {
		next := e.DateAdded
		e.NextReview = &next
	}
	if e.Interval == nil {
		iv := DefaultInterval
		e.Interval = &iv
	}
}

// Clone returns a deep copy of the entry.
func (e WordEntry) Clone() WordEntry {
	out := e
	out.Mistakes = make(map[string]int, len(e.Mistakes))
	for k, v := range e.Mistakes {
		out.Mistakes[k] = v
	}
	if e.NextReview != nil {
		nr := *e.NextReview
		out.NextReview = &nr
	}
	if e.Interval != nil {
		iv := *e.Interval
		out.Interval = &iv
	}
	return out
}

// FirstTryAccuracy returns the share of correct first-try answers among all
// correct answers, as a percentage rounded to the nearest integer.
func (e WordEntry) FirstTryAccuracy() int {
	if e.TotalAttempts == 0 {
		return 0
	}
	return int(math.Round(float64(e.CorrectFirstTryCount) / float64(e.TotalAttempts) * 100))
}

// Catalogue is a user's ordered collection of words. Order carries no meaning.
type Catalogue []WordEntry

// Index returns the position of word (case-insensitive) or -1.
func (c Catalogue) Index(word string) int {
	key := WordKey(word)
	if key == "" {
		return -1
	}
	for i := range c {
		if WordKey(c[i].Word) == key {
			return i
		}
	}
	return -1
}

// Find returns a pointer into the catalogue for word, or nil.
func (c Catalogue) Find(word string) *WordEntry {
	if i := c.Index(word); i >= 0 {
		return &c[i]
	}
	return nil
}

// Clone returns a deep copy of the catalogue.
func (c Catalogue) Clone() Catalogue {
	if c == nil {
		return nil
	}
	out := make(Catalogue, len(c))
	for i := range c {
		out[i] = c[i].Clone()
	}
	return out
}

// Dedupe drops entries whose word key was already seen, keeping the first,
// and reports how many were dropped.
func (c Catalogue) Dedupe() (Catalogue, int) {
	out := lo.UniqBy(c, func(e WordEntry) string { return WordKey(e.Word) })
	return out, len(c) - len(out)
}

// Validate checks that every entry has a non-empty word and that no two
// entries share a word key. All problems are collected.
func (c Catalogue) Validate() error {
	var errs FieldErrors
	seen := make(map[string]int, len(c))

	for i, e := range c {
		field := fmt.Sprintf("entries[%d].word", i)
		key := WordKey(e.Word)
		if key == "" {
			errs.Add(field, "required")
			continue
		}
		if prev, ok := seen[key]; ok {
			errs.Add(field, fmt.Sprintf("duplicate of entries[%d]", prev))
			continue
		}
		seen[key] = i
	}

	return errs.Err()
}

// Normalize normalizes every entry in place.
func (c Catalogue) Normalize(now time.Time) {
	for i := range c {
		c[i].Normalize(now)
	}
}
