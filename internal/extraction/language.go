package extraction

import (
	"strings"

	"golang.org/x/text/language"
)

// langProfiles holds stopword profiles for the languages the detector can
// distinguish, in evaluation order. Ordering makes tie results deterministic.
var langProfiles = []struct {
	code  string
	words []string
}{
	{"en", []string{"the", "and", "of", "to", "is", "in", "for", "with", "this", "that"}},
	{"es", []string{"el", "la", "de", "que", "los", "las", "una", "por", "con", "para"}},
	{"fr", []string{"le", "la", "les", "des", "une", "est", "dans", "pour", "avec", "sur"}},
	{"de", []string{"der", "die", "das", "und", "ist", "ein", "nicht", "mit", "für", "auf"}},
}

// DetectLanguage returns a best-effort BCP-47 language tag for the text.
// Empty or whitespace-only text yields "und"; text matching no profile
// defaults to "en". Tags are canonicalized through x/text.
func DetectLanguage(text string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return language.Und.String()
	}

	seen := make(map[string]int, len(words))
	for _, w := range words {
		seen[strings.Trim(w, ".,;:!?\"'()")]++
	}

	best := ""
	bestHits := 0
	for _, profile := range langProfiles {
		hits := 0
		for _, stopword := range profile.words {
			hits += seen[stopword]
		}
		if hits > bestHits {
			best = profile.code
			bestHits = hits
		}
	}

	if best == "" {
		best = "en"
	}

	tag, err := language.Parse(best)
	if err != nil {
		return language.Und.String()
	}
	return tag.String()
}
