package domain

import "strings"

// typographic marks that phone keyboards substitute for their ASCII forms.
var punctuationFolder = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'",
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
)

// WordKey is the identity of a word: lowercased, any whitespace run folded to
// one space, typographic apostrophes and hyphens folded to ASCII. Entries with
// equal keys are the same word.
func WordKey(word string) string {
	fields := strings.Fields(word)
	if len(fields) == 0 {
		return ""
	}
	return punctuationFolder.Replace(strings.ToLower(strings.Join(fields, " ")))
}

// SameWord reports whether a and b name the same catalogue word.
func SameWord(a, b string) bool {
	return WordKey(a) == WordKey(b)
}
