package engine

import (
	"github.com/rs/zerolog/log"

	"inquest/internal/content"
)

// State is one persona's accumulated behavior for the session: named
// counters that only grow, plus a hint cooldown that decays by one per
// turn when not re-armed and never goes below zero.
type State struct {
	Counters     map[string]int
	HintCooldown int
}

func newState() *State {
	return &State{Counters: make(map[string]int)}
}

func (s *State) clone() *State {
	c := &State{
		Counters:     make(map[string]int, len(s.Counters)),
		HintCooldown: s.HintCooldown,
	}
	for k, v := range s.Counters {
		c.Counters[k] = v
	}
	return c
}

// Counter returns the named counter's value, zero when absent.
func (s *State) Counter(name string) int {
	return s.Counters[name]
}

// Delta is the combined post-turn state change. It is applied as a single
// replacement, never piecemeal.
type Delta struct {
	Increments map[string]int
	// RearmHint sets the cooldown to HintCooldown; otherwise the cooldown
	// decays by one.
	RearmHint    bool
	HintCooldown int
}

// BehaviorStore holds one State per persona for the lifetime of a session.
// Callers must serialize access; the session orchestrator does so under
// its own mutex.
type BehaviorStore struct {
	states map[string]*State
}

func NewBehaviorStore() *BehaviorStore {
	return &BehaviorStore{states: make(map[string]*State)}
}

// Get returns a snapshot of the persona's state, creating a zeroed entry
// on first access. Mutating the snapshot does not affect the store.
func (b *BehaviorStore) Get(personaID string) *State {
	st, ok := b.states[personaID]
	if !ok {
		st = newState()
		b.states[personaID] = st
	}
	return st.clone()
}

// Apply merges a turn's delta into the persona's state atomically.
func (b *BehaviorStore) Apply(personaID string, d Delta) {
	st, ok := b.states[personaID]
	if !ok {
		st = newState()
	}
	next := st.clone()
	for name, inc := range d.Increments {
		if inc > 0 {
			next.Counters[name] += inc
		}
	}
	if d.RearmHint {
		next.HintCooldown = d.HintCooldown
	} else if next.HintCooldown > 0 {
		next.HintCooldown--
	}
	b.states[personaID] = next

	log.Debug().
		Str("persona", personaID).
		Interface("counters", next.Counters).
		Int("hint_cooldown", next.HintCooldown).
		Msg("Applied behavior delta")
}

// Sync reconciles the store with a reconfigured persona set: entries for
// removed personas are dropped, new personas get zeroed entries, and
// retained personas keep their accumulated state. Calling Sync twice with
// the same list is a no-op the second time.
func (b *BehaviorStore) Sync(personas []*content.Persona) {
	keep := make(map[string]bool, len(personas))
	for _, p := range personas {
		keep[p.ID] = true
		if _, ok := b.states[p.ID]; !ok {
			b.states[p.ID] = newState()
		}
	}
	for id := range b.states {
		if !keep[id] {
			delete(b.states, id)
		}
	}
}
