package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedGenerate(t *testing.T) {
	gen := NewScripted()

	t.Run("echoes the latest player line", func(t *testing.T) {
		reply, err := gen.Generate(context.Background(), Input{
			PersonaName: "Lars",
			History: []Turn{
				{Role: RolePlayer, Text: "hello"},
				{Role: RolePersona, Text: "[stub] Lars replies: hello"},
				{Role: RolePlayer, Text: "what did you see?"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "[stub] Lars replies: what did you see?", reply)
	})

	t.Run("empty history", func(t *testing.T) {
		reply, err := gen.Generate(context.Background(), Input{PersonaName: "Lars"})
		require.NoError(t, err)
		assert.Equal(t, "[stub] Lars replies: ...", reply)
	})

	t.Run("missing persona name", func(t *testing.T) {
		reply, err := gen.Generate(context.Background(), Input{
			History: []Turn{{Role: RolePlayer, Text: "hi"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "[stub] The persona replies: hi", reply)
	})
}

func TestGenerationError(t *testing.T) {
	inner := errors.New("quota exceeded")
	err := &GenerationError{Err: inner}

	assert.Contains(t, err.Error(), "quota exceeded")
	assert.ErrorIs(t, err, inner)

	var genErr *GenerationError
	assert.ErrorAs(t, error(err), &genErr)
}
