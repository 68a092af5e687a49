package catalogue

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

const (
	maxWordLength       = 100
	maxDefinitionLength = 2000
)

// AddWordInput adds one word. An empty Definition is looked up.
type AddWordInput struct {
	Word       string
	Definition string
}

func (i AddWordInput) Validate() error {
	var errs domain.FieldErrors

	word := strings.TrimSpace(i.Word)
	if word == "" {
		errs.Add("word", "required")
	} else if utf8.RuneCountInString(word) > maxWordLength {
		errs.Add("word", "too long")
	}
	if utf8.RuneCountInString(i.Definition) > maxDefinitionLength {
		errs.Add("definition", "too long")
	}

	return errs.Err()
}

// UpdateDefinitionInput replaces the definition of a word.
type UpdateDefinitionInput struct {
	Word       string
	Definition string
}

func (i UpdateDefinitionInput) Validate() error {
	var errs domain.FieldErrors

	if strings.TrimSpace(i.Word) == "" {
		errs.Add("word", "required")
	}
	if utf8.RuneCountInString(i.Definition) > maxDefinitionLength {
		errs.Add("definition", "too long")
	}

	return errs.Err()
}

// ImportResult reports a completed import.
type ImportResult struct {
	Imported int `json:"imported"`
}
