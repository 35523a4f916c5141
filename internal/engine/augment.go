package engine

import (
	"strconv"
	"strings"

	"inquest/internal/content"
)

// Augmentation is the turn-specific instruction block layered on top of a
// persona's brief before a generation call, plus bookkeeping for the
// post-turn behavior delta. It is never persisted into the transcript.
type Augmentation struct {
	Text string
	// HintIssued reports that the soft "kindness helps" hint was included
	// this turn; the orchestrator re-arms the hint cooldown when set.
	HintIssued bool
}

// Augment builds the gating directives for one turn. The effective counter
// value is the stored count plus this turn's increment: the utterance that
// delivers the Nth compliment already counts toward the threshold it is
// asked against. The hint decision instead uses the pre-turn cooldown.
// Deterministic in (gate, signals, state, increment); performs no I/O.
func Augment(g *content.Gate, sig Signals, st *State, increment int) Augmentation {
	if g == nil {
		return Augmentation{}
	}

	effective := st.Counter(g.Counter) + increment
	satisfied := effective >= g.Threshold

	var parts []string

	if satisfied {
		if qualifies(g, sig) {
			parts = append(parts, g.Directives.Reveal)
		} else {
			parts = append(parts, g.Directives.Appeased)
		}
	} else {
		needed := g.Threshold - effective
		withhold := strings.NewReplacer(
			"{received}", strconv.Itoa(effective),
			"{needed}", strconv.Itoa(needed),
		).Replace(g.Directives.Withhold)
		parts = append(parts, withhold)
	}

	hintIssued := false
	if !satisfied {
		if !sig.RepeatRequest && st.HintCooldown <= 0 {
			hintIssued = true
			parts = append(parts, g.Directives.Hint)
		} else {
			parts = append(parts, g.Directives.NoHint)
		}
	}

	if sig.RepeatRequest {
		if satisfied {
			parts = append(parts, g.Directives.RepeatFull)
		} else {
			parts = append(parts, g.Directives.RepeatVague)
		}
	}

	if sig.ForbiddenMention {
		parts = append(parts, g.Directives.Forbidden)
	}

	parts = append(parts, g.Directives.Standing)

	return Augmentation{Text: joinDirectives(parts), HintIssued: hintIssued}
}

// qualifies reports whether the turn carries the gate's qualifying signal.
// An unset signal name means inquiry, which every bundled case uses.
func qualifies(g *content.Gate, sig Signals) bool {
	switch g.Signal {
	case "repeat":
		return sig.RepeatRequest
	case "compliment":
		return sig.Compliment
	default:
		return sig.TopicInquiry
	}
}

func joinDirectives(parts []string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, " ")
}
