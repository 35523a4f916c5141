package voice

import (
	"context"
	"io"
)

// Provider defines the interface for TTS backends that voice persona
// replies.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// ListVoices returns the voices this provider can speak with.
	ListVoices(ctx context.Context) ([]Voice, error)

	// Synthesize generates audio from text and returns an audio stream.
	Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error)

	// IsAvailable checks whether the provider can currently be used.
	IsAvailable(ctx context.Context) bool
}

// Voice describes one selectable voice.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
}

// SynthesizeOptions carries per-request synthesis settings. Zero values
// fall back to provider defaults.
type SynthesizeOptions struct {
	Voice      string  `json:"voice"`
	Speed      float64 `json:"speed,omitempty"`
	Format     string  `json:"format,omitempty"`
	Language   string  `json:"language,omitempty"`
	Model      string  `json:"model,omitempty"`
	Engine     string  `json:"engine,omitempty"`
	SampleRate string  `json:"sample_rate,omitempty"`
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider  string
	APIKey    string
	Region    string
	ProjectID string
	Voice     string
	Format    string
	Speed     float64
}
