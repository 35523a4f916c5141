package voice

import (
	"context"
	"fmt"
	"os"
)

// NewProvider creates a TTS provider from configuration. An empty provider
// name selects OpenAI, matching the voice tags the bundled cases carry.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not set (use --api-key or OPENAI_API_KEY)")
		}
		return NewOpenAIProvider(apiKey), nil
	case "gcp":
		return NewGCPProvider(ctx, cfg.Voice)
	case "polly":
		return NewPollyProvider(ctx, cfg.Region)
	default:
		return nil, fmt.Errorf("unknown TTS provider: %s (supported: openai, gcp, polly)", cfg.Provider)
	}
}
