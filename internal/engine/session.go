package engine

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"inquest/internal/content"
	"inquest/internal/llm"
)

// Outcome is the terminal verdict of a session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSolved
	OutcomeFailed
)

// Terminal reports whether the session is over.
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// EventKind labels a state-change notification. Timing and debouncing are
// the presentation layer's business; the session only reports that
// something changed.
type EventKind string

const (
	EventSelected   EventKind = "selected"
	EventTranscript EventKind = "transcript"
	EventBusy       EventKind = "busy"
	EventOutcome    EventKind = "outcome"
	EventContent    EventKind = "content"
)

// Event is a state-change notification delivered to the subscriber.
type Event struct {
	Kind      EventKind
	PersonaID string
}

// Speaker voices persona replies. Stop interrupts whatever is currently
// playing and releases its resources.
type Speaker interface {
	Speak(ctx context.Context, text string, voice *content.VoiceSpec) error
	Stop()
}

// Sentinel errors for rejected operations. All of them leave session state
// untouched.
var (
	ErrSessionOver    = errors.New("session already reached an outcome")
	ErrBusy           = errors.New("a reply is already in flight")
	ErrNoPersona      = errors.New("no persona selected")
	ErrBlankInput     = errors.New("blank input")
	ErrUnknownPersona = errors.New("unknown persona")
)

// ErrorPlaceholder is appended to the transcript in place of a persona
// reply when the generation backend fails.
const ErrorPlaceholder = "[error] Unable to get reply"

// Config assembles a session's collaborators. Speaker and Notify are
// optional; AudioEnabled is honored only when a Speaker is present.
type Config struct {
	Case         *content.Case
	Generator    llm.Generator
	Speaker      Speaker
	AudioEnabled bool
	Notify       func(Event)
}

// Session orchestrates one play-through: persona selection, gated turn
// processing, and the final accusation. All state transitions run under a
// single mutex; the busy flag alone guarantees at most one in-flight
// generation call.
type Session struct {
	mu         sync.Mutex
	cas        *content.Case
	classifier *Classifier
	behavior   *BehaviorStore
	transcript *TranscriptStore
	solution   SolutionSpec
	generator  llm.Generator
	speaker    Speaker
	notify     func(Event)

	activeID  string
	busy      bool
	outcome   Outcome
	lastGuess string
	audioOn   bool
}

// NewSession wires a session for the given case.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Case == nil {
		return nil, errors.New("session needs a case")
	}
	if err := cfg.Case.Validate(); err != nil {
		return nil, err
	}
	if cfg.Generator == nil {
		return nil, errors.New("session needs a generator")
	}
	s := &Session{
		cas:        cfg.Case,
		classifier: NewClassifier(cfg.Case),
		behavior:   NewBehaviorStore(),
		transcript: NewTranscriptStore(),
		solution:   NewSolutionSpec(cfg.Case.Solution),
		generator:  cfg.Generator,
		speaker:    cfg.Speaker,
		notify:     cfg.Notify,
		audioOn:    cfg.AudioEnabled && cfg.Speaker != nil,
	}
	for _, p := range cfg.Case.Personas {
		s.transcript.Open(p)
		s.behavior.Get(p.ID)
	}
	return s, nil
}

// Case returns the active case content.
func (s *Session) Case() *content.Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cas
}

// Personas lists the case's persona set.
func (s *Session) Personas() []*content.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cas.Personas
}

// Active returns the engaged persona, or nil on the selection screen.
func (s *Session) Active() *content.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == "" {
		return nil
	}
	return s.cas.PersonaByID(s.activeID)
}

// Busy reports whether a generation call is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Outcome returns the terminal verdict, OutcomeNone while playing.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// LastGuess returns the raw text of the final accusation, recorded on both
// the solved and the failed branch.
func (s *Session) LastGuess() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGuess
}

// Visible returns the displayable transcript of one persona.
func (s *Session) Visible(personaID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript.Visible(personaID)
}

// AudioEnabled reports whether replies are voiced.
func (s *Session) AudioEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioOn
}

// SetAudio toggles reply voicing. Disabling stops any playing audio.
func (s *Session) SetAudio(on bool) {
	s.mu.Lock()
	if s.speaker == nil {
		s.mu.Unlock()
		return
	}
	s.audioOn = on
	speaker := s.speaker
	s.mu.Unlock()
	if !on {
		speaker.Stop()
	}
}

// SelectPersona engages a persona for questioning. Rejected once the
// session is terminal.
func (s *Session) SelectPersona(personaID string) error {
	s.mu.Lock()
	if s.outcome.Terminal() {
		s.mu.Unlock()
		return ErrSessionOver
	}
	p := s.cas.PersonaByID(personaID)
	if p == nil {
		s.mu.Unlock()
		return ErrUnknownPersona
	}
	s.transcript.Open(p)
	s.behavior.Get(p.ID)
	s.activeID = p.ID
	speaker := s.speaker
	s.mu.Unlock()

	if speaker != nil {
		speaker.Stop()
	}
	s.emit(Event{Kind: EventSelected, PersonaID: personaID})
	return nil
}

// Back returns to the selection screen. Logs and behavior state persist
// for later re-selection.
func (s *Session) Back() {
	s.mu.Lock()
	if s.outcome.Terminal() || s.activeID == "" {
		s.mu.Unlock()
		return
	}
	s.activeID = ""
	speaker := s.speaker
	s.mu.Unlock()

	if speaker != nil {
		speaker.Stop()
	}
	s.emit(Event{Kind: EventSelected})
}

// Send processes one player utterance against the engaged persona:
// classify, augment, delegate to the generation backend, record the reply.
// On backend failure an inline error entry is recorded instead and the
// behavior state is left untouched for the turn. The busy flag is released
// on every path.
func (s *Session) Send(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	switch {
	case s.outcome.Terminal():
		s.mu.Unlock()
		return ErrSessionOver
	case s.activeID == "":
		s.mu.Unlock()
		return ErrNoPersona
	case s.busy:
		s.mu.Unlock()
		return ErrBusy
	case trimmed == "":
		s.mu.Unlock()
		return ErrBlankInput
	}

	persona := s.cas.PersonaByID(s.activeID)
	personaID := persona.ID

	sig := s.classifier.Classify(personaID, trimmed)
	increment := 0
	if sig.Compliment {
		increment = 1
	}

	// Classify against the pre-turn state; the delta lands after the
	// reply. See Augment for the effective-count rule.
	state := s.behavior.Get(personaID)
	aug := Augment(persona.Gate, sig, state, increment)

	brief := persona.Brief
	if aug.Text != "" {
		brief = brief + "\n\n" + aug.Text
	}

	s.transcript.Append(personaID, Entry{Role: RolePlayer, Text: trimmed})
	s.busy = true
	history := s.historyLocked(personaID)
	s.mu.Unlock()

	s.emit(Event{Kind: EventTranscript, PersonaID: personaID})
	s.emit(Event{Kind: EventBusy, PersonaID: personaID})

	reply, genErr := s.generator.Generate(ctx, llm.Input{
		PersonaName: persona.Name,
		Brief:       brief,
		History:     history,
	})

	s.mu.Lock()
	if genErr != nil {
		log.Error().Err(genErr).Str("persona", personaID).Msg("Generation failed")
		s.transcript.Append(personaID, Entry{Role: RolePersona, Text: ErrorPlaceholder})
	} else {
		s.transcript.Append(personaID, Entry{Role: RolePersona, Text: reply})
		delta := Delta{Increments: map[string]int{counterName(persona): increment}}
		if persona.Gate != nil {
			delta.RearmHint = aug.HintIssued
			delta.HintCooldown = persona.Gate.HintCooldown
		}
		s.behavior.Apply(personaID, delta)
	}
	s.busy = false
	// A guess may have landed while the generation call was in flight; a
	// terminal session must not start fresh audio.
	speakReply := genErr == nil && s.audioOn && s.speaker != nil && reply != "" && !s.outcome.Terminal()
	voice := persona.Voice
	s.mu.Unlock()

	s.emit(Event{Kind: EventBusy, PersonaID: personaID})
	s.emit(Event{Kind: EventTranscript, PersonaID: personaID})

	if speakReply {
		go s.speak(context.WithoutCancel(ctx), reply, voice)
	}
	return nil
}

// SubmitGuess evaluates the player's accusation and moves the session to
// its terminal state. Blank guesses are rejected without any transition.
func (s *Session) SubmitGuess(guess string) (Outcome, error) {
	trimmed := strings.TrimSpace(guess)

	s.mu.Lock()
	if s.outcome.Terminal() {
		outcome := s.outcome
		s.mu.Unlock()
		return outcome, ErrSessionOver
	}
	if trimmed == "" {
		outcome := s.outcome
		s.mu.Unlock()
		return outcome, ErrBlankInput
	}

	if s.solution.Evaluate(trimmed) {
		s.outcome = OutcomeSolved
	} else {
		s.outcome = OutcomeFailed
	}
	s.lastGuess = trimmed
	s.activeID = ""
	outcome := s.outcome
	speaker := s.speaker
	s.mu.Unlock()

	if speaker != nil {
		speaker.Stop()
	}
	log.Info().
		Str("guess", trimmed).
		Bool("solved", outcome == OutcomeSolved).
		Msg("Guess submitted")
	s.emit(Event{Kind: EventOutcome})
	return outcome, nil
}

// SyncContent re-synchronizes the session with a re-authored case. Logs
// and counters of retained personas survive; removed personas are dropped
// and an engaged removed persona forces the selection screen.
func (s *Session) SyncContent(c *content.Case) error {
	if c == nil {
		return errors.New("nil case")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.cas = c
	s.classifier = NewClassifier(c)
	s.solution = NewSolutionSpec(c.Solution)
	s.behavior.Sync(c.Personas)
	s.transcript.Sync(c.Personas)
	var speaker Speaker
	if s.activeID != "" && c.PersonaByID(s.activeID) == nil {
		s.activeID = ""
		speaker = s.speaker
	}
	s.mu.Unlock()

	if speaker != nil {
		speaker.Stop()
	}
	s.emit(Event{Kind: EventContent})
	return nil
}

func (s *Session) historyLocked(personaID string) []llm.Turn {
	entries := s.transcript.History(personaID)
	turns := make([]llm.Turn, 0, len(entries))
	for _, e := range entries {
		switch e.Role {
		case RolePlayer:
			turns = append(turns, llm.Turn{Role: llm.RolePlayer, Text: e.Text})
		case RolePersona:
			turns = append(turns, llm.Turn{Role: llm.RolePersona, Text: e.Text})
		}
	}
	return turns
}

func (s *Session) speak(ctx context.Context, text string, voice *content.VoiceSpec) {
	if err := s.speaker.Speak(ctx, text, voice); err != nil {
		log.Warn().Err(err).Msg("Speech synthesis failed")
	}
}

func (s *Session) emit(e Event) {
	if s.notify != nil {
		s.notify(e)
	}
}

func counterName(p *content.Persona) string {
	if p.Gate != nil && p.Gate.Counter != "" {
		return p.Gate.Counter
	}
	return "compliments"
}
