package practice

import (
	"github.com/heartmarshall/wordpractice/internal/domain"
)

// Prompt is a newly selected word.
type Prompt struct {
	Mode        domain.PracticeMode `json:"mode"`
	Word        string              `json:"word"`
	Definition  string              `json:"definition"`
	CoveredForm string              `json:"coveredForm"`
	Score       float64             `json:"score"`
	Streak      int                 `json:"streak"`
	Session     domain.SessionStats `json:"session"`
}

// AttemptResult is the outcome of one answer.
type AttemptResult struct {
	Mode    domain.PracticeMode `json:"mode"`
	Word    string              `json:"word"`
	Correct bool                `json:"correct"`
	// Score and Streak are the entry's values after scoring; zero in random mode.
	Score  float64 `json:"score"`
	Streak int     `json:"streak"`
	// Attempts counts answers in the current round.
	Attempts int `json:"attempts"`
	// Hint is the next progressive hint; set only after a wrong answer.
	Hint    string              `json:"hint,omitempty"`
	Session domain.SessionStats `json:"session"`
}

// HintResult describes the current round without giving the word away.
type HintResult struct {
	Mode        domain.PracticeMode `json:"mode"`
	CoveredForm string              `json:"coveredForm"`
	Hint        string              `json:"hint"`
	Attempts    int                 `json:"attempts"`
}

// Reveal is the unmasked current word.
type Reveal struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	Syllables  []string `json:"syllables"`
}

// WordStat is the progress of one catalogue word.
type WordStat struct {
	Word             string  `json:"word"`
	Score            float64 `json:"score"`
	Streak           int     `json:"streak"`
	TotalAttempts    int     `json:"totalAttempts"`
	FirstTryAccuracy int     `json:"firstTryAccuracy"`
	Mastered         bool    `json:"mastered"`
}

// MistakeStat is one recorded misspelling.
type MistakeStat struct {
	Word    string `json:"word"`
	Variant string `json:"variant"`
	Count   int    `json:"count"`
}

// Stats summarises a user's progress.
type Stats struct {
	TotalWords       int                 `json:"totalWords"`
	Mastered         int                 `json:"mastered"`
	AverageScore     float64             `json:"averageScore"`
	TotalAttempts    int                 `json:"totalAttempts"`
	FirstTryAccuracy int                 `json:"firstTryAccuracy"`
	Words            []WordStat          `json:"words"`
	TopMistakes      []MistakeStat       `json:"topMistakes"`
	Session          domain.SessionStats `json:"session"`
}
