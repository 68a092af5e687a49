package engine

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// hintFreeAttempts is the number of wrong attempts answered with a fully
// masked hint before syllables start to be revealed.
const hintFreeAttempts = 2

var syllablePattern = regexp.MustCompile(`(?i)[^aeiouy]*[aeiouy]+(?:[^aeiouy]+|$)`)

// CoveredForm returns one underscore per character of word.
func CoveredForm(word string) string {
	return strings.Repeat("_", utf8.RuneCountInString(word))
}

// Syllables splits word with a vowel-group heuristic. A word without vowels
// is returned as a single syllable.
func Syllables(word string) []string {
	parts := syllablePattern.FindAllString(word, -1)
	if len(parts) == 0 {
		return []string{word}
	}
	return parts
}

// ProgressiveHint reveals max(attempts-2, 0) leading syllables of word and
// masks the rest, joining syllables with "-".
func ProgressiveHint(word string, attempts int) string {
	syl := Syllables(word)
	reveal := min(max(attempts-hintFreeAttempts, 0), len(syl))

	out := make([]string, len(syl))
	for i, s := range syl {
		if i < reveal {
			out[i] = s
			continue
		}
		out[i] = CoveredForm(s)
	}
	return strings.Join(out, "-")
}
