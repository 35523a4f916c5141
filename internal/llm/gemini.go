package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini generates persona replies through the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini-backed generator authenticated by API key.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, temperature: 0.8}, nil
}

// Generate sends the composed brief and the full history and returns the
// persona's next line.
func (g *Gemini) Generate(ctx context.Context, in Input) (string, error) {
	var contents []*genai.Content
	for _, turn := range in.History {
		role := genai.RoleUser
		if turn.Role == RolePersona {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(role)))
	}

	temp := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: in.Brief}},
		},
	}

	log.Debug().
		Str("model", g.model).
		Str("persona", in.PersonaName).
		Int("history", len(in.History)).
		Msg("Requesting persona reply")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", &GenerationError{Err: fmt.Errorf("empty response from model")}
	}
	return reply, nil
}

var _ Generator = (*Gemini)(nil)
