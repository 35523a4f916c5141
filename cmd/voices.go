package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"inquest/internal/voice"
)

func handleVoices(ctx context.Context, c *cli.Command) error {
	provider, err := voice.NewProvider(ctx, voice.Config{
		Provider: c.String("provider"),
		APIKey:   c.String("api-key"),
		Region:   c.String("region"),
	})
	if err != nil {
		return err
	}

	voices, err := provider.ListVoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	if len(voices) == 0 {
		fmt.Println("No voices available")
		return nil
	}

	fmt.Printf("Available voices for provider '%s':\n", provider.Name())
	for _, v := range voices {
		if v.Description != "" {
			fmt.Printf("  - %s (%s) - %s\n", v.ID, v.Language, v.Description)
		} else {
			fmt.Printf("  - %s (%s)\n", v.ID, v.Language)
		}
	}
	return nil
}
