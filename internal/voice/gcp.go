package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/rs/zerolog/log"
)

// GCPProvider implements Provider on Google Cloud Text-to-Speech.
// Authentication uses GOOGLE_APPLICATION_CREDENTIALS or Application
// Default Credentials.
type GCPProvider struct {
	client   *texttospeech.Client
	voice    string
	language string
}

// NewGCPProvider creates a Google Cloud TTS provider.
func NewGCPProvider(ctx context.Context, defaultVoice string) (*GCPProvider, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}
	p := &GCPProvider{
		client:   client,
		voice:    "en-US-Neural2-D",
		language: "en-US",
	}
	if defaultVoice != "" {
		p.voice = defaultVoice
	}
	return p, nil
}

// Name returns the provider name.
func (p *GCPProvider) Name() string {
	return "gcp"
}

// ListVoices returns the available Google Cloud voices.
func (p *GCPProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list GCP voices: %w", err)
	}

	var voices []Voice
	for _, v := range resp.Voices {
		gender := "unknown"
		switch v.SsmlGender {
		case texttospeechpb.SsmlVoiceGender_MALE:
			gender = "male"
		case texttospeechpb.SsmlVoiceGender_FEMALE:
			gender = "female"
		case texttospeechpb.SsmlVoiceGender_NEUTRAL:
			gender = "neutral"
		}
		for _, langCode := range v.LanguageCodes {
			voices = append(voices, Voice{
				ID:       v.Name,
				Name:     v.Name,
				Language: langCode,
				Gender:   gender,
			})
		}
	}

	log.Debug().Int("count", len(voices)).Msg("Listed GCP TTS voices")
	return voices, nil
}

// Synthesize generates audio for one persona reply.
func (p *GCPProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	voice := p.voice
	if options.Voice != "" {
		voice = options.Voice
	}

	language := p.language
	if options.Language != "" {
		language = options.Language
	} else if voice != "" {
		// Voice names carry their language prefix, e.g. en-US-Neural2-D.
		parts := strings.Split(voice, "-")
		if len(parts) >= 2 {
			language = parts[0] + "-" + parts[1]
		}
	}

	log.Debug().
		Str("voice", voice).
		Str("language", language).
		Float64("speed", options.Speed).
		Msg("Making GCP TTS synthesis request")

	resp, err := p.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: language,
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: audioEncoding(options.Format),
			SpeakingRate:  speakingRate(options.Speed),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	return io.NopCloser(bytes.NewReader(resp.AudioContent)), nil
}

// IsAvailable checks the service by listing voices.
func (p *GCPProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	return err == nil
}

// Close closes the underlying client.
func (p *GCPProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func audioEncoding(format string) texttospeechpb.AudioEncoding {
	switch strings.ToLower(format) {
	case "wav", "linear16":
		return texttospeechpb.AudioEncoding_LINEAR16
	case "ogg", "ogg_opus":
		return texttospeechpb.AudioEncoding_OGG_OPUS
	default:
		return texttospeechpb.AudioEncoding_MP3
	}
}

// speakingRate clamps to the 0.25-4.0 range GCP accepts.
func speakingRate(speed float64) float64 {
	if speed <= 0 {
		return 1.0
	}
	if speed < 0.25 {
		return 0.25
	}
	if speed > 4.0 {
		return 4.0
	}
	return speed
}

var _ Provider = (*GCPProvider)(nil)
