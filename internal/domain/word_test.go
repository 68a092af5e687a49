package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNewWordEntry_Defaults(t *testing.T) {
	t.Parallel()

	e := NewWordEntry("  cat ", "a small feline", testNow)

	if e.Word != "cat" {
		t.Errorf("Word = %q, want %q", e.Word, "cat")
	}
	if e.Score != 0 || e.Streak != 0 || e.TotalAttempts != 0 || e.CorrectFirstTryCount != 0 {
		t.Errorf("counters should start at zero: %+v", e)
	}
	if e.Mistakes == nil || len(e.Mistakes) != 0 {
		t.Errorf("Mistakes = %v, want empty map", e.Mistakes)
	}
	if !e.DateAdded.Equal(testNow) {
		t.Errorf("DateAdded = %v, want %v", e.DateAdded, testNow)
	}
	if e.NextReview == nil || !e.NextReview.Equal(testNow) {
		t.Errorf("NextReview = %v, want %v", e.NextReview, testNow)
	}
	if e.Interval == nil || *e.Interval != DefaultInterval {
		t.Errorf("Interval = %v, want %v", e.Interval, DefaultInterval)
	}
}

func TestWordEntry_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        WordEntry
		wantScore float64
	}{
		{name: "negative score", in: WordEntry{Word: "a", Score: -5}, wantScore: 0},
		{name: "score above max", in: WordEntry{Word: "a", Score: 250}, wantScore: 100},
		{name: "NaN score", in: WordEntry{Word: "a", Score: math.NaN()}, wantScore: 0},
		{name: "in range", in: WordEntry{Word: "a", Score: 42.4}, wantScore: 42.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := tt.in
			e.Normalize(testNow)
			if e.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", e.Score, tt.wantScore)
			}
			if e.Mistakes == nil {
				t.Error("Mistakes should be initialised")
			}
			if e.DateAdded.IsZero() {
				t.Error("DateAdded should be backfilled")
			}
		})
	}
}

func TestWordEntry_Normalize_Idempotent(t *testing.T) {
	t.Parallel()

	e := WordEntry{Word: " dog", Score: 120, Streak: -3}
	e.Normalize(testNow)
	first := e.Clone()

	e.Normalize(testNow.Add(time.Hour))

	if e.Word != first.Word || e.Score != first.Score || e.Streak != first.Streak {
		t.Errorf("second Normalize changed entry: %+v vs %+v", e, first)
	}
	if !e.DateAdded.Equal(first.DateAdded) || !e.NextReview.Equal(*first.NextReview) {
		t.Error("second Normalize changed timestamps")
	}
}

func TestWordEntry_Clone_IsDeep(t *testing.T) {
	t.Parallel()

	e := NewWordEntry("cat", "", testNow)
	e.Mistakes["cot"] = 1

	c := e.Clone()
	c.Mistakes["cot"] = 5
	*c.Interval = 9

	if e.Mistakes["cot"] != 1 {
		t.Error("clone shares mistakes map with original")
	}
	if *e.Interval != DefaultInterval {
		t.Error("clone shares interval pointer with original")
	}
}

func TestWordEntry_FirstTryAccuracy(t *testing.T) {
	t.Parallel()

	e := WordEntry{TotalAttempts: 3, CorrectFirstTryCount: 2}
	if got := e.FirstTryAccuracy(); got != 67 {
		t.Errorf("FirstTryAccuracy = %d, want 67", got)
	}
	if got := (WordEntry{}).FirstTryAccuracy(); got != 0 {
		t.Errorf("FirstTryAccuracy on empty = %d, want 0", got)
	}
}

func TestCatalogue_Find_CaseInsensitive(t *testing.T) {
	t.Parallel()

	cat := Catalogue{NewWordEntry("Cat", "", testNow), NewWordEntry("dog", "", testNow)}

	if e := cat.Find("CAT"); e == nil || e.Word != "Cat" {
		t.Fatalf("Find(CAT) = %v", e)
	}
	if cat.Find("bird") != nil {
		t.Error("Find(bird) should be nil")
	}
	if cat.Index("") != -1 {
		t.Error("Index of empty word should be -1")
	}

	cat.Find("dog").Score = 7
	if cat[1].Score != 7 {
		t.Error("Find should return a pointer into the catalogue")
	}
}

func TestCatalogue_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		cat := Catalogue{{Word: "cat"}, {Word: "dog"}}
		if err := cat.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty word and duplicate", func(t *testing.T) {
		t.Parallel()
		cat := Catalogue{{Word: "cat"}, {Word: "  "}, {Word: "CAT"}}
		err := cat.Validate()
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || len(ve.Errors) != 2 {
			t.Fatalf("expected 2 field errors, got %v", err)
		}
		if ve.Errors[1].Field != "entries[2].word" {
			t.Errorf("second error field = %q", ve.Errors[1].Field)
		}
	})
}

func TestCatalogue_Dedupe(t *testing.T) {
	t.Parallel()

	cat := Catalogue{{Word: "Cat", Score: 40}, {Word: "dog"}, {Word: "cat", Score: 5}, {Word: "DOG"}}

	out, dropped := cat.Dedupe()
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(out) != 2 || out[0].Word != "Cat" || out[0].Score != 40 || out[1].Word != "dog" {
		t.Errorf("deduped = %+v", out)
	}

	if _, dropped := (Catalogue{{Word: "cat"}}).Dedupe(); dropped != 0 {
		t.Errorf("dropped = %d for a unique catalogue", dropped)
	}
}
