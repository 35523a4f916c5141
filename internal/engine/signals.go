package engine

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"inquest/internal/content"
)

// Signals are the narrative cues extracted from a single player utterance.
// Classification is total: any input maps to some (possibly all-false)
// signal set, never an error.
type Signals struct {
	Compliment       bool
	RepeatRequest    bool
	TopicInquiry     bool
	ForbiddenMention bool
}

// Vocabulary shared by every case. Case-specific vocabularies (incident
// keywords, per-persona forbidden topics) come from the case file.
var (
	complimentWords = []string{
		"nice", "kind", "smart", "brilliant", "great", "amazing", "awesome",
		"helpful", "handsome", "talented", "cool", "wonderful", "fantastic",
		"impressive", "sweet", "lovely", "admirable", "incredible", "best",
		"appreciate", "love", "admire",
	}
	subjectForms = []string{"you", "you're", "youre", "ur", "u"}

	complimentRe = regexp.MustCompile(`\b(` + strings.Join(complimentWords, "|") + `)\b`)
	thanksRe     = regexp.MustCompile(`\bthank(?:s| you| ya| u| you so much)\b`)
	repeatRe     = regexp.MustCompile(`\b(?:repeat|say that again|what did you say|come again|speak up|pardon|huh|could you(?: please)? (?:repeat|say that)|can you(?: please)? (?:repeat|say that)|please repeat|sorry[,\s]+(?:what|could you repeat))\b`)
)

// Classifier turns utterances into Signals for one case's persona set.
type Classifier struct {
	incident  *regexp.Regexp
	intent    *regexp.Regexp
	subject   map[string]*regexp.Regexp
	forbidden map[string]*regexp.Regexp
}

// NewClassifier compiles the vocabularies of the given case.
func NewClassifier(c *content.Case) *Classifier {
	cl := &Classifier{
		incident:  alternation(c.Keywords.Incident),
		intent:    alternation(c.Keywords.Intent),
		subject:   make(map[string]*regexp.Regexp, len(c.Personas)),
		forbidden: make(map[string]*regexp.Regexp),
	}
	for _, p := range c.Personas {
		forms := make([]string, 0, len(subjectForms)+2)
		forms = append(forms, subjectForms...)
		if p.Name != "" {
			forms = append(forms, regexp.QuoteMeta(fold(p.Name)))
		}
		if p.ID != "" && !strings.EqualFold(p.ID, p.Name) {
			forms = append(forms, regexp.QuoteMeta(fold(p.ID)))
		}
		cl.subject[p.ID] = regexp.MustCompile(`\b(` + strings.Join(forms, "|") + `)\b`)

		if p.Gate != nil && len(p.Gate.ForbiddenKeywords) > 0 {
			cl.forbidden[p.ID] = alternation(p.Gate.ForbiddenKeywords)
		}
	}
	return cl
}

// Classify inspects one utterance addressed to the given persona.
// A compliment counts only when the utterance references the addressee;
// praising a third party does not. A forbidden-topic mention overrides the
// compliment signal unconditionally.
func (cl *Classifier) Classify(personaID, utterance string) Signals {
	text := fold(strings.TrimSpace(utterance))
	if text == "" {
		return Signals{}
	}

	var sig Signals

	if subj, ok := cl.subject[personaID]; ok && subj.MatchString(text) {
		sig.Compliment = thanksRe.MatchString(text) || complimentRe.MatchString(text)
	}
	sig.RepeatRequest = repeatRe.MatchString(text)
	if cl.incident != nil && cl.incident.MatchString(text) {
		sig.TopicInquiry = strings.Contains(text, "?") ||
			(cl.intent != nil && cl.intent.MatchString(text))
	}
	if re, ok := cl.forbidden[personaID]; ok && re.MatchString(text) {
		sig.ForbiddenMention = true
		sig.Compliment = false
	}
	return sig
}

// alternation compiles a keyword list into a substring alternation.
// Returns nil for an empty list, which never matches.
func alternation(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(fold(w))
	}
	return regexp.MustCompile(`(?:` + strings.Join(quoted, "|") + `)`)
}

// fold lowercases with full Unicode case folding so guesses and utterances
// compare the same way regardless of the player's keyboard habits.
func fold(s string) string {
	return cases.Fold().String(s)
}
