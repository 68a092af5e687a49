package domain

import (
	"testing"
	"time"
)

func TestParseCatalogue_Lenient(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"word": "cat", "score": "high", "streak": null},
		{"word": "dog", "definition": "a canine", "score": 140, "streak": 2, "dateAdded": "2023-01-02T03:04:05Z",
		 "mistakes": {"dgo": 2, "bad": "x"}},
		{"word": "bird", "dateAdded": 1700000000000},
		{"word": "   "},
		{"definition": "no word"},
		42
	]`)

	cat, dropped, err := ParseCatalogue(data, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}
	if len(cat) != 3 {
		t.Fatalf("len = %d, want 3", len(cat))
	}

	cat0 := cat[0]
	if cat0.Score != 0 || cat0.Streak != 0 || cat0.Definition != "" {
		t.Errorf("cat not defaulted: %+v", cat0)
	}
	if !cat0.DateAdded.Equal(testNow) {
		t.Errorf("cat.DateAdded = %v, want now", cat0.DateAdded)
	}

	dog := cat[1]
	if dog.Score != 100 {
		t.Errorf("dog.Score = %v, want clamped 100", dog.Score)
	}
	if dog.Streak != 2 || dog.Definition != "a canine" {
		t.Errorf("dog fields lost: %+v", dog)
	}
	if want := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC); !dog.DateAdded.Equal(want) {
		t.Errorf("dog.DateAdded = %v, want %v", dog.DateAdded, want)
	}
	if len(dog.Mistakes) != 1 || dog.Mistakes["dgo"] != 2 {
		t.Errorf("dog.Mistakes = %v", dog.Mistakes)
	}

	if want := time.UnixMilli(1700000000000).UTC(); !cat[2].DateAdded.Equal(want) {
		t.Errorf("bird.DateAdded = %v, want %v", cat[2].DateAdded, want)
	}
}

func TestParseCatalogueStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		words   int
		wantErr bool
	}{
		{name: "lenient fields kept", data: `[{"word":"cat","score":"x"},{"word":"dog"}]`, words: 2},
		{name: "empty", data: `[]`, words: 0},
		{name: "null", data: `null`, words: 0},
		{name: "not an array", data: `{}`, wantErr: true},
		{name: "record without word", data: `[{"word":"cat"},{"definition":"x"}]`, wantErr: true},
		{name: "no usable records", data: `[{"word":5},42]`, wantErr: true},
		{name: "case-insensitive duplicate", data: `[{"word":"Cat"},{"word":"cat"}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cat, err := ParseCatalogueStrict([]byte(tt.data), testNow)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", cat)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cat) != tt.words {
				t.Errorf("len = %d, want %d", len(cat), tt.words)
			}
		})
	}
}

func TestParseCatalogue_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "null", "  "} {
		cat, dropped, err := ParseCatalogue([]byte(in), testNow)
		if err != nil || dropped != 0 || len(cat) != 0 {
			t.Errorf("ParseCatalogue(%q) = %v, %d, %v", in, cat, dropped, err)
		}
	}
}

func TestParseCatalogue_NotArray(t *testing.T) {
	t.Parallel()

	if _, _, err := ParseCatalogue([]byte(`{"word":"cat"}`), testNow); err == nil {
		t.Fatal("expected error for object input")
	}
}

func TestParseEntry_BoundsHold(t *testing.T) {
	t.Parallel()

	raws := []map[string]any{
		{"word": "a", "score": -1.0},
		{"word": "b", "score": 1e9, "streak": -4.0, "totalAttempts": -2.0},
		{"word": "c", "score": true},
	}
	for _, raw := range raws {
		e, ok := ParseEntry(raw, testNow)
		if !ok {
			t.Fatalf("ParseEntry(%v) rejected", raw)
		}
		if e.Score < MinScore || e.Score > MaxScore {
			t.Errorf("%s: score %v out of bounds", e.Word, e.Score)
		}
		if e.Streak < 0 || e.TotalAttempts < 0 {
			t.Errorf("%s: negative counters %+v", e.Word, e)
		}
	}
}
