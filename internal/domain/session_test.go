package domain

import "testing"

func TestRandomTrials_ResetAndGet(t *testing.T) {
	t.Parallel()

	trials := RandomTrials{}
	trials.Put(RandomTrial{Word: "Zebra", Attempts: 3, Correct: true})

	got, ok := trials.Get("zebra")
	if !ok || got.Attempts != 3 {
		t.Fatalf("Get(zebra) = %+v, %v", got, ok)
	}

	reset := trials.Reset("ZEBRA")
	if reset.Attempts != 0 || reset.Correct {
		t.Errorf("Reset returned %+v", reset)
	}
	if got, _ := trials.Get("zebra"); got.Attempts != 0 {
		t.Errorf("trial not reset: %+v", got)
	}
	if len(trials) != 1 {
		t.Errorf("len = %d, want 1", len(trials))
	}
}

func TestPracticeMode_IsValid(t *testing.T) {
	t.Parallel()

	for _, m := range []PracticeMode{ModeCatalogue, ModeRandom, ModeCustom} {
		if !m.IsValid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if PracticeMode("spaced").IsValid() {
		t.Error("unknown mode should be invalid")
	}
}
