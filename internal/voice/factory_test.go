package voice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("defaults to openai", func(t *testing.T) {
		p, err := NewProvider(context.Background(), Config{APIKey: "test-key"})
		require.NoError(t, err)
		assert.Equal(t, "openai", p.Name())
	})

	t.Run("openai requires a key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, err := NewProvider(context.Background(), Config{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("openai reads key from environment", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-key")
		p, err := NewProvider(context.Background(), Config{Provider: "openai"})
		require.NoError(t, err)
		assert.True(t, p.IsAvailable(context.Background()))
	})

	t.Run("rejects unknown providers", func(t *testing.T) {
		_, err := NewProvider(context.Background(), Config{Provider: "kazoo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown TTS provider")
	})
}
