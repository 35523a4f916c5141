package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolutionSpecEvaluate(t *testing.T) {
	spec := NewSolutionSpec("frode did it")

	t.Run("exact phrase", func(t *testing.T) {
		assert.True(t, spec.Evaluate("frode did it"))
	})

	t.Run("phrase inside a sentence", func(t *testing.T) {
		assert.True(t, spec.Evaluate("I'm pretty sure Frode did it"))
	})

	t.Run("naming the culprit alone is enough", func(t *testing.T) {
		assert.True(t, spec.Evaluate("it was frode!"))
	})

	t.Run("case folding", func(t *testing.T) {
		assert.True(t, spec.Evaluate("FRODE DID IT"))
	})

	t.Run("blank is rejected", func(t *testing.T) {
		assert.False(t, spec.Evaluate(""))
		assert.False(t, spec.Evaluate("   "))
	})

	t.Run("unrelated guess fails", func(t *testing.T) {
		assert.False(t, spec.Evaluate("it was the gardener"))
		assert.False(t, spec.Evaluate("maris was the culprit"))
		assert.False(t, spec.Evaluate("ryan"))
	})

	t.Run("filler tokens are not accepted on their own", func(t *testing.T) {
		assert.False(t, spec.Evaluate("did"))
		assert.False(t, spec.Evaluate("it"))
	})

	t.Run("normalized phrase exposed", func(t *testing.T) {
		assert.Equal(t, "frode did it", NewSolutionSpec("  Frode DID it  ").Phrase())
	})
}

func TestSolutionSpecEmptyPhrase(t *testing.T) {
	spec := NewSolutionSpec("")
	assert.False(t, spec.Evaluate("anything"))
	assert.Empty(t, spec.Phrase())
}
