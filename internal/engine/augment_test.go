package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAugmentNilGate(t *testing.T) {
	aug := Augment(nil, Signals{Compliment: true}, newState(), 1)
	assert.Empty(t, aug.Text)
	assert.False(t, aug.HintIssued)
}

func TestAugmentWithholdBelowThreshold(t *testing.T) {
	gate := testCase().PersonaByID("lars").Gate

	t.Run("placeholders are substituted", func(t *testing.T) {
		st := newState()
		st.Counters["compliments"] = 1
		aug := Augment(gate, Signals{}, st, 0)
		assert.Contains(t, aug.Text, "1 received, 2 needed")
	})

	t.Run("this turn's compliment counts toward the total", func(t *testing.T) {
		st := newState()
		st.Counters["compliments"] = 1
		aug := Augment(gate, Signals{Compliment: true}, st, 1)
		assert.Contains(t, aug.Text, "2 received, 1 needed")
	})

	t.Run("gated secret never leaks below threshold", func(t *testing.T) {
		st := newState()
		aug := Augment(gate, Signals{TopicInquiry: true}, st, 0)
		assert.NotContains(t, aug.Text, "REVEAL")
		assert.NotContains(t, aug.Text, "Frode")
		assert.NotContains(t, aug.Text, "photo")
	})
}

func TestAugmentThresholdSatisfied(t *testing.T) {
	gate := testCase().PersonaByID("lars").Gate

	t.Run("inquiry at the threshold reveals", func(t *testing.T) {
		st := newState()
		st.Counters["compliments"] = 2
		aug := Augment(gate, Signals{Compliment: true, TopicInquiry: true}, st, 1)
		assert.Contains(t, aug.Text, "REVEAL")
		assert.NotContains(t, aug.Text, "WITHHOLD")
	})

	t.Run("configured qualifying signal is honored", func(t *testing.T) {
		repeatGate := *gate
		repeatGate.Signal = "repeat"
		st := newState()
		st.Counters["compliments"] = 3
		aug := Augment(&repeatGate, Signals{RepeatRequest: true}, st, 0)
		assert.Contains(t, aug.Text, "REVEAL")
		aug = Augment(&repeatGate, Signals{TopicInquiry: true}, st, 0)
		assert.Contains(t, aug.Text, "APPEASED")
	})

	t.Run("satisfied without inquiry stays appeased", func(t *testing.T) {
		st := newState()
		st.Counters["compliments"] = 3
		aug := Augment(gate, Signals{}, st, 0)
		assert.Contains(t, aug.Text, "APPEASED")
		assert.NotContains(t, aug.Text, "REVEAL")
	})
}

func TestAugmentHintCooldown(t *testing.T) {
	gate := testCase().PersonaByID("lars").Gate

	t.Run("hint issued when cooldown is spent", func(t *testing.T) {
		st := newState()
		aug := Augment(gate, Signals{}, st, 0)
		assert.True(t, aug.HintIssued)
		assert.Contains(t, aug.Text, "HINT:")
		assert.NotContains(t, aug.Text, "NOHINT")
	})

	t.Run("no hint while the cooldown is armed", func(t *testing.T) {
		st := newState()
		st.HintCooldown = 2
		aug := Augment(gate, Signals{}, st, 0)
		assert.False(t, aug.HintIssued)
		assert.Contains(t, aug.Text, "NOHINT")
	})

	t.Run("repeat requests suppress the hint", func(t *testing.T) {
		st := newState()
		aug := Augment(gate, Signals{RepeatRequest: true}, st, 0)
		assert.False(t, aug.HintIssued)
		assert.Contains(t, aug.Text, "NOHINT")
	})

	t.Run("no hint once satisfied", func(t *testing.T) {
		st := newState()
		st.Counters["compliments"] = 3
		aug := Augment(gate, Signals{}, st, 0)
		assert.False(t, aug.HintIssued)
		assert.NotContains(t, aug.Text, "HINT:")
	})
}

func TestAugmentRepeatRequest(t *testing.T) {
	gate := testCase().PersonaByID("lars").Gate

	t.Run("full repeat when satisfied", func(t *testing.T) {
		st := newState()
		st.Counters["compliments"] = 3
		aug := Augment(gate, Signals{RepeatRequest: true}, st, 0)
		assert.Contains(t, aug.Text, "REPEATFULL")
		assert.NotContains(t, aug.Text, "REPEATVAGUE")
	})

	t.Run("vague repeat below threshold", func(t *testing.T) {
		st := newState()
		aug := Augment(gate, Signals{RepeatRequest: true}, st, 0)
		assert.Contains(t, aug.Text, "REPEATVAGUE")
		assert.NotContains(t, aug.Text, "REPEATFULL")
	})
}

func TestAugmentForbiddenAndStanding(t *testing.T) {
	gate := testCase().PersonaByID("lars").Gate

	t.Run("forbidden mention adds the correction", func(t *testing.T) {
		st := newState()
		aug := Augment(gate, Signals{ForbiddenMention: true}, st, 0)
		assert.Contains(t, aug.Text, "FORBIDDEN")
	})

	t.Run("standing directive is always present", func(t *testing.T) {
		st := newState()
		assert.Contains(t, Augment(gate, Signals{}, st, 0).Text, "STANDING")
		st.Counters["compliments"] = 5
		assert.Contains(t, Augment(gate, Signals{TopicInquiry: true}, st, 0).Text, "STANDING")
	})
}
