package engine

import (
	"strings"
)

// SolutionSpec is the case's accepted answer: the canonical phrase plus
// its distinctive whitespace-delimited tokens, all case-folded. A guess is
// accepted when it contains any of them as a substring, so "I'm pretty
// sure Frode did it" passes against "frode did it".
type SolutionSpec struct {
	phrase  string
	accepts []string
}

// minTokenLen keeps filler like "it", "the" and "did" out of the
// acceptance set, so "it was the gardener" cannot pass by accident.
const minTokenLen = 4

// NewSolutionSpec derives the acceptance set from the configured phrase.
func NewSolutionSpec(phrase string) SolutionSpec {
	normalized := fold(strings.TrimSpace(phrase))
	spec := SolutionSpec{phrase: normalized}
	if normalized == "" {
		return spec
	}
	seen := map[string]bool{normalized: true}
	spec.accepts = append(spec.accepts, normalized)
	for _, token := range strings.Fields(normalized) {
		if len(token) >= minTokenLen && !seen[token] {
			seen[token] = true
			spec.accepts = append(spec.accepts, token)
		}
	}
	return spec
}

// Phrase returns the normalized canonical phrase.
func (s SolutionSpec) Phrase() string {
	return s.phrase
}

// Evaluate decides whether a free-text guess names the solution. Blank
// guesses are always rejected.
func (s SolutionSpec) Evaluate(guess string) bool {
	normalized := fold(strings.TrimSpace(guess))
	if normalized == "" {
		return false
	}
	for _, accept := range s.accepts {
		if strings.Contains(normalized, accept) {
			return true
		}
	}
	return false
}
