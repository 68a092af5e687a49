package practice

import (
	"strings"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// SelectInput asks for the next word.
type SelectInput struct {
	Mode domain.PracticeMode
	// Words is the custom list; required for ModeCustom, ignored otherwise.
	Words []string
}

func (i SelectInput) Validate() error {
	var errs domain.FieldErrors

	if !i.Mode.IsValid() {
		errs.Add("mode", "must be catalogue, random or custom")
	}
	if i.Mode == domain.ModeCustom {
		nonEmpty := 0
		for _, w := range i.Words {
			if strings.TrimSpace(w) != "" {
				nonEmpty++
			}
		}
		if nonEmpty == 0 {
			errs.Add("words", "required for custom mode")
		}
	}

	return errs.Err()
}

// AttemptInput is one answer.
type AttemptInput struct {
	// Word is the word being answered; empty means the current round's word.
	Word string
	// Answer is the typed spelling. It decides correctness unless Correct is set.
	Answer string
	// Correct overrides the spelling comparison for self-assessed answers.
	Correct *bool
	// RevealCount is how many times the word was shown before answering.
	RevealCount int
}

func (i AttemptInput) Validate() error {
	var errs domain.FieldErrors

	if i.Correct == nil && strings.TrimSpace(i.Answer) == "" {
		errs.Add("answer", "required unless correct is given")
	}
	if i.RevealCount < 0 {
		errs.Add("revealCount", "must be >= 0")
	}

	return errs.Err()
}

// isCorrect decides the outcome of an answer for word.
func (i AttemptInput) isCorrect(word string) bool {
	if i.Correct != nil {
		return *i.Correct
	}
	return domain.SameWord(i.Answer, word)
}
