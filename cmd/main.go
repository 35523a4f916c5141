package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load .env if present; API keys usually live there during development.
	_ = godotenv.Load()

	app := newApp()

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed to run application")
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "inquest",
		Usage: "Voice-acted murder mystery interrogation engine",
		Description: `inquest runs an interactive murder mystery. You question a cast of
suspects one at a time; replies come from a language model playing each
persona, optionally voiced through a TTS provider. When you think you
know who did it, accuse them and see how it ends.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
			&cli.StringFlag{
				Name:  "case",
				Usage: "Path to a case file (default: the bundled door handle case)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:    "play",
				Usage:   "Play a case interactively in the terminal",
				Action:  handlePlay,
				Aliases: []string{"p"},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "model",
						Usage: "Gemini model for persona replies",
					},
					&cli.BoolFlag{
						Name:  "audio",
						Usage: "Voice persona replies through a TTS provider",
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "TTS provider: openai, gcp, polly",
						Value: "openai",
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "API key for the TTS provider (or use environment variables)",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "AWS region for Polly",
						Value: "us-east-1",
					},
					&cli.FloatFlag{
						Name:  "speed",
						Usage: "Speech speed (0.25-4.0, provider dependent)",
						Value: 1.0,
					},
				},
			},
			{
				Name:   "voices",
				Usage:  "List available voices for a TTS provider",
				Action: handleVoices,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "TTS provider: openai, gcp, polly",
						Value: "openai",
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "API key for the TTS provider",
					},
					&cli.StringFlag{
						Name:  "region",
						Usage: "AWS region for Polly",
						Value: "us-east-1",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Expose a session as an MCP stdio server",
				Action: handleServe,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "model",
						Usage: "Gemini model for persona replies",
					},
				},
			},
			{
				Name:  "case",
				Usage: "Inspect case files",
				Commands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Show a case summary",
						Action:    handleCaseShow,
						ArgsUsage: "[path]",
					},
					{
						Name:      "validate",
						Usage:     "Validate a case file",
						Action:    handleCaseValidate,
						ArgsUsage: "<path>",
					},
				},
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}
}
