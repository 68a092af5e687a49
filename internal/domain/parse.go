package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// ParseCatalogue decodes a stored catalogue leniently. Each element is run
// through ParseEntry; elements without a usable word are skipped and counted
// in dropped. Data that is not a JSON array is an error.
func ParseCatalogue(data []byte, now time.Time) (cat Catalogue, dropped int, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Catalogue{}, 0, nil
	}

	var raws []any
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, fmt.Errorf("decode catalogue: %w", err)
	}

	cat = make(Catalogue, 0, len(raws))
	for _, r := range raws {
		obj, ok := r.(map[string]any)
		if !ok {
			dropped++
			continue
		}
		e, ok := ParseEntry(obj, now)
		if !ok {
			dropped++
			continue
		}
		cat = append(cat, e)
	}
	return cat, dropped, nil
}

// ParseCatalogueStrict decodes a catalogue received from a remote store. The
// same per-field leniency applies, but a record without a usable word or two
// words with the same key reject the whole payload.
func ParseCatalogueStrict(data []byte, now time.Time) (Catalogue, error) {
	cat, dropped, err := ParseCatalogue(data, now)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		return nil, fmt.Errorf("decode catalogue: %d unusable records", dropped)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("decode catalogue: %w", err)
	}
	return cat, nil
}

// ParseEntry builds a normalized WordEntry from a loosely typed record.
// Non-numeric counters become 0, a missing or unparseable dateAdded becomes
// now. The second result is false when the record has no non-empty word.
func ParseEntry(raw map[string]any, now time.Time) (WordEntry, bool) {
	word, _ := raw["word"].(string)
	word = strings.TrimSpace(word)
	if word == "" {
		return WordEntry{}, false
	}

	e := WordEntry{Word: word}
	e.Definition, _ = raw["definition"].(string)
	e.Score = number(raw["score"])
	e.Streak = int(number(raw["streak"]))
	e.TotalAttempts = int(number(raw["totalAttempts"]))
	e.CorrectFirstTryCount = int(number(raw["correctFirstTryCount"]))
	e.DateAdded = timestamp(raw["dateAdded"])

	if m, ok := raw["mistakes"].(map[string]any); ok {
		e.Mistakes = make(map[string]int, len(m))
		for k, v := range m {
			if n := int(number(v)); n > 0 {
				e.Mistakes[k] = n
			}
		}
	}
	if t := timestamp(raw["nextReview"]); !t.IsZero() {
		e.NextReview = &t
	}
	if v, ok := raw["interval"].(float64); ok && !math.IsNaN(v) && v > 0 {
		e.Interval = &v
	}

	e.Normalize(now)
	return e, true
}

func number(v any) float64 {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// timestamp accepts RFC 3339 strings, plain dates and epoch milliseconds.
func timestamp(v any) time.Time {
	switch t := v.(type) {
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed.UTC()
			}
		}
	case float64:
		if t > 0 && !math.IsInf(t, 0) {
			return time.UnixMilli(int64(t)).UTC()
		}
	}
	return time.Time{}
}
