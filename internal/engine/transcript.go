package engine

import (
	"inquest/internal/content"
)

// Role identifies who produced a transcript entry.
type Role string

const (
	// RoleBrief is the narrator-level character brief seeding every log.
	// It is model context, never shown to the player.
	RoleBrief Role = "brief"
	// RolePlayer is a player utterance.
	RolePlayer Role = "player"
	// RolePersona is a persona reply (or an inline error placeholder).
	RolePersona Role = "persona"
)

// Entry is one line of a persona's conversation log.
type Entry struct {
	Role Role
	Text string
}

// TranscriptStore keeps the ordered, append-only conversation log per
// persona. Every log starts with exactly one brief entry; the only
// in-place mutation ever performed is replacing that leading brief when
// the persona's source definition changes.
type TranscriptStore struct {
	logs map[string][]Entry
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{logs: make(map[string][]Entry)}
}

// Open ensures a log exists for the persona, seeded with its brief.
// An existing log is left untouched.
func (t *TranscriptStore) Open(p *content.Persona) {
	if _, ok := t.logs[p.ID]; ok {
		return
	}
	t.logs[p.ID] = []Entry{{Role: RoleBrief, Text: p.Brief}}
}

// Append adds an entry to the persona's log.
func (t *TranscriptStore) Append(personaID string, e Entry) {
	t.logs[personaID] = append(t.logs[personaID], e)
}

// Visible returns the entries shown to the player, in order: everything
// except the leading brief.
func (t *TranscriptStore) Visible(personaID string) []Entry {
	log := t.logs[personaID]
	out := make([]Entry, 0, len(log))
	for _, e := range log {
		if e.Role != RoleBrief {
			out = append(out, e)
		}
	}
	return out
}

// History returns a copy of the full log, brief included, for use as model
// context.
func (t *TranscriptStore) History(personaID string) []Entry {
	log := t.logs[personaID]
	out := make([]Entry, len(log))
	copy(out, log)
	return out
}

// Len reports the full log length including the brief entry.
func (t *TranscriptStore) Len(personaID string) int {
	return len(t.logs[personaID])
}

// Sync reconciles the store with a reconfigured persona set. Logs for
// removed personas are dropped and new personas get freshly seeded logs.
// For a retained persona whose brief changed, the leading brief entry is
// replaced in place and the rest of the log is preserved.
func (t *TranscriptStore) Sync(personas []*content.Persona) {
	keep := make(map[string]bool, len(personas))
	for _, p := range personas {
		keep[p.ID] = true
		log, ok := t.logs[p.ID]
		if !ok {
			t.Open(p)
			continue
		}
		if len(log) == 0 || log[0].Role != RoleBrief {
			// A log must stay brief-led.
			t.logs[p.ID] = append([]Entry{{Role: RoleBrief, Text: p.Brief}}, stripBriefs(log)...)
			continue
		}
		if log[0].Text != p.Brief {
			log[0].Text = p.Brief
		}
	}
	for id := range t.logs {
		if !keep[id] {
			delete(t.logs, id)
		}
	}
}

func stripBriefs(log []Entry) []Entry {
	out := make([]Entry, 0, len(log))
	for _, e := range log {
		if e.Role != RoleBrief {
			out = append(out, e)
		}
	}
	return out
}
