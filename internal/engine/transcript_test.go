package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inquest/internal/content"
)

func TestTranscriptStoreOpen(t *testing.T) {
	ts := NewTranscriptStore()
	lars := &content.Persona{ID: "lars", Name: "Lars", Brief: "the brief"}

	ts.Open(lars)
	history := ts.History("lars")
	require.Len(t, history, 1)
	assert.Equal(t, RoleBrief, history[0].Role)
	assert.Equal(t, "the brief", history[0].Text)

	ts.Append("lars", Entry{Role: RolePlayer, Text: "hello"})
	ts.Open(lars)
	assert.Equal(t, 2, ts.Len("lars"), "reopening must not reset the log")
}

func TestTranscriptStoreVisible(t *testing.T) {
	ts := NewTranscriptStore()
	ts.Open(&content.Persona{ID: "lars", Brief: "the brief"})
	ts.Append("lars", Entry{Role: RolePlayer, Text: "hello"})
	ts.Append("lars", Entry{Role: RolePersona, Text: "hi there"})

	visible := ts.Visible("lars")
	require.Len(t, visible, 2)
	assert.Equal(t, RolePlayer, visible[0].Role)
	assert.Equal(t, RolePersona, visible[1].Role)
	for _, e := range visible {
		assert.NotEqual(t, RoleBrief, e.Role)
	}

	assert.Len(t, ts.History("lars"), 3, "history keeps the brief")
}

func TestTranscriptStoreSync(t *testing.T) {
	ts := NewTranscriptStore()
	ts.Open(&content.Persona{ID: "lars", Brief: "old brief"})
	ts.Append("lars", Entry{Role: RolePlayer, Text: "hello"})
	ts.Append("lars", Entry{Role: RolePersona, Text: "hi"})
	ts.Open(&content.Persona{ID: "hanne", Brief: "hanne brief"})

	next := []*content.Persona{
		{ID: "lars", Brief: "new brief"},
		{ID: "maris", Brief: "maris brief"},
	}
	ts.Sync(next)

	t.Run("changed brief is replaced in place", func(t *testing.T) {
		history := ts.History("lars")
		require.Len(t, history, 3)
		assert.Equal(t, RoleBrief, history[0].Role)
		assert.Equal(t, "new brief", history[0].Text)
		assert.Equal(t, "hello", history[1].Text)
		assert.Equal(t, "hi", history[2].Text)
	})

	t.Run("new persona gets a seeded log", func(t *testing.T) {
		history := ts.History("maris")
		require.Len(t, history, 1)
		assert.Equal(t, "maris brief", history[0].Text)
	})

	t.Run("removed persona is dropped", func(t *testing.T) {
		assert.Zero(t, ts.Len("hanne"))
	})

	t.Run("sync is idempotent", func(t *testing.T) {
		ts.Sync(next)
		assert.Equal(t, 3, ts.Len("lars"))
		assert.Equal(t, 1, ts.Len("maris"))
	})
}
