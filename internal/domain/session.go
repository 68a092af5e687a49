package domain

// SessionStats holds the counters of one practice session. It is never persisted.
type SessionStats struct {
	Correct  int `json:"correct"`
	Wrong    int `json:"wrong"`
	Total    int `json:"total"`
	Accuracy int `json:"accuracy"`
}

// RandomTrial tracks attempts on a word drawn from the random pool. It is
// independent of catalogue scoring and resets whenever the word is re-drawn.
type RandomTrial struct {
	Word     string `json:"word"`
	Attempts int    `json:"attempts"`
	Correct  bool   `json:"correct"`
}

// RandomTrials maps a word key to its trial.
type RandomTrials map[string]RandomTrial

// Reset starts a fresh trial for word and returns it.
func (t RandomTrials) Reset(word string) RandomTrial {
	trial := RandomTrial{Word: word}
	t[WordKey(word)] = trial
	return trial
}

// Get returns the trial for word, if any.
func (t RandomTrials) Get(word string) (RandomTrial, bool) {
	trial, ok := t[WordKey(word)]
	return trial, ok
}

// Put stores trial under its word key.
func (t RandomTrials) Put(trial RandomTrial) {
	t[WordKey(trial.Word)] = trial
}

// PracticeMode selects where the next word comes from.
type PracticeMode string

const (
	ModeCatalogue PracticeMode = "catalogue"
	ModeRandom    PracticeMode = "random"
	ModeCustom    PracticeMode = "custom"
)

func (m PracticeMode) String() string { return string(m) }

func (m PracticeMode) IsValid() bool {
	switch m {
	case ModeCatalogue, ModeRandom, ModeCustom:
		return true
	}
	return false
}
