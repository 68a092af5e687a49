package freedict

import (
	"path"
	"strings"

	"github.com/samber/lo"
)

// Accents a recording can be tagged with. AccentUnknown matches no preference.
const (
	AccentUS      = "us"
	AccentUK      = "uk"
	AccentAU      = "au"
	AccentUnknown = ""
)

// Result is every etymology of a word merged into one entry.
type Result struct {
	Word        string       `json:"word"`
	Phonetic    string       `json:"phonetic,omitempty"`
	Definitions []Definition `json:"definitions"`
	Recordings  []Recording  `json:"recordings"`
}

type Definition struct {
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Text         string `json:"text"`
	Example      string `json:"example,omitempty"`
}

// Recording is a pronunciation audio file.
type Recording struct {
	URL    string `json:"url"`
	Accent string `json:"accent,omitempty"`
}

// FirstDefinition returns the first definition text, or "" for an unknown word.
func (r *Result) FirstDefinition() string {
	if r == nil || len(r.Definitions) == 0 {
		return ""
	}
	return r.Definitions[0].Text
}

// Recording returns the first recording in accent, falling back to the first
// recording of any accent.
func (r *Result) Recording(accent string) (Recording, bool) {
	if r == nil || len(r.Recordings) == 0 {
		return Recording{}, false
	}
	if rec, ok := lo.Find(r.Recordings, func(rec Recording) bool { return rec.Accent == accent }); ok {
		return rec, true
	}
	return r.Recordings[0], true
}

// apiEntry is one etymology in the FreeDictionary response array.
type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// merge folds entries into one Result. Definitions keep response order;
// recordings are unique by URL; the phonetic is the first non-empty one.
func merge(entries []apiEntry) *Result {
	res := &Result{Definitions: []Definition{}, Recordings: []Recording{}}
	if len(entries) == 0 {
		return res
	}
	res.Word = entries[0].Word

	seen := make(map[string]bool)
	for _, e := range entries {
		if res.Phonetic == "" {
			res.Phonetic = strings.TrimSpace(e.Phonetic)
		}
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				text := strings.TrimSpace(d.Definition)
				if text == "" {
					continue
				}
				res.Definitions = append(res.Definitions, Definition{
					PartOfSpeech: m.PartOfSpeech,
					Text:         text,
					Example:      strings.TrimSpace(d.Example),
				})
			}
		}
		for _, ph := range e.Phonetics {
			if res.Phonetic == "" {
				res.Phonetic = strings.TrimSpace(ph.Text)
			}
			if ph.Audio == "" || seen[ph.Audio] {
				continue
			}
			seen[ph.Audio] = true
			res.Recordings = append(res.Recordings, Recording{URL: ph.Audio, Accent: accentOf(ph.Audio)})
		}
	}
	return res
}

// accentOf reads the accent suffix of a recording file name, e.g.
// ".../hello-uk.mp3" is AccentUK.
func accentOf(audioURL string) string {
	name := strings.ToLower(path.Base(audioURL))
	name = strings.TrimSuffix(name, path.Ext(name))
	i := strings.LastIndexByte(name, '-')
	if i < 0 {
		return AccentUnknown
	}
	switch suffix := name[i+1:]; suffix {
	case AccentUS, AccentUK, AccentAU:
		return suffix
	default:
		return AccentUnknown
	}
}
