package voice

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inquest/internal/content"
)

type recordingProvider struct {
	lastText    string
	lastOptions SynthesizeOptions
	err         error
}

func (r *recordingProvider) Name() string { return "recording" }

func (r *recordingProvider) ListVoices(ctx context.Context) ([]Voice, error) { return nil, nil }

func (r *recordingProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	r.lastText = text
	r.lastOptions = options
	if r.err != nil {
		return nil, r.err
	}
	return io.NopCloser(strings.NewReader("audio")), nil
}

func (r *recordingProvider) IsAvailable(ctx context.Context) bool { return true }

func TestSpeakerSkipsEmptyText(t *testing.T) {
	provider := &recordingProvider{}
	s := NewSpeaker(provider, SynthesizeOptions{})
	require.NoError(t, s.Speak(context.Background(), "", nil))
	assert.Empty(t, provider.lastText)
}

func TestSpeakerSurfacesSynthesisErrors(t *testing.T) {
	provider := &recordingProvider{err: fmt.Errorf("quota exceeded")}
	s := NewSpeaker(provider, SynthesizeOptions{})
	err := s.Speak(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesis failed")
}

func TestSpeakerAppliesVoiceDescriptor(t *testing.T) {
	// Synthesis succeeds but playback fails on machines without an audio
	// player, so only the provider-facing side is asserted.
	provider := &recordingProvider{}
	s := NewSpeaker(provider, SynthesizeOptions{Voice: "alloy"})

	voice := &content.VoiceSpec{
		Tag:          "onyx",
		Instructions: "Speak slowly, with a heavy sigh between sentences.",
	}
	_ = s.Speak(context.Background(), "I already told you everything.", voice)

	assert.Equal(t, "onyx", provider.lastOptions.Voice)
	assert.Equal(t, "Speak slowly, with a heavy sigh between sentences.\n\nI already told you everything.", provider.lastText)
}

func TestSpeakerStopWithoutPlayback(t *testing.T) {
	s := NewSpeaker(&recordingProvider{}, SynthesizeOptions{})
	assert.NotPanics(t, func() { s.Stop() })
}
