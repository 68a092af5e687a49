package domain

import "testing"

func TestWordKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  cat  ", want: "cat"},
		{name: "lowercase", input: "Labyrinth", want: "labyrinth"},
		{name: "compress inner spaces", input: "ice   cream", want: "ice cream"},
		{name: "tab becomes space", input: "ice\tcream", want: "ice cream"},
		{name: "newline and nbsp runs", input: "ice\n\u00a0 cream", want: "ice cream"},
		{name: "curly apostrophe", input: "Don\u2019t", want: "don't"},
		{name: "unicode hyphen", input: "well\u2010known", want: "well-known"},
		{name: "diacritics preserved", input: "Café", want: "café"},
		{name: "hyphens preserved", input: "well-known", want: "well-known"},
		{name: "apostrophes preserved", input: "don't", want: "don't"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WordKey(tt.input); got != tt.want {
				t.Errorf("WordKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSameWord(t *testing.T) {
	t.Parallel()

	if !SameWord("Cat", " cat") {
		t.Error(`SameWord("Cat", " cat") = false`)
	}
	if !SameWord("rock \u2019n\u2019 roll", "rock 'n' roll") {
		t.Error("typographic apostrophes should match ASCII ones")
	}
	if SameWord("cat", "cot") {
		t.Error(`SameWord("cat", "cot") = true`)
	}
}
