package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"inquest/internal/content"
	"inquest/internal/engine"
	"inquest/internal/llm"
	"inquest/internal/voice"
)

var (
	titleColor   = color.New(color.FgYellow, color.Bold)
	personaColor = color.New(color.FgCyan, color.Bold)
	playerColor  = color.New(color.FgGreen)
	faintColor   = color.New(color.Faint)
	verdictColor = color.New(color.FgMagenta, color.Bold)
)

func handlePlay(ctx context.Context, c *cli.Command) error {
	cas, err := content.LoadCase(c.String("case"))
	if err != nil {
		return err
	}

	generator, err := newGenerator(ctx, c.String("model"))
	if err != nil {
		return err
	}

	var speaker engine.Speaker
	if c.Bool("audio") {
		provider, err := voice.NewProvider(ctx, voice.Config{
			Provider: c.String("provider"),
			APIKey:   c.String("api-key"),
			Region:   c.String("region"),
		})
		if err != nil {
			return fmt.Errorf("failed to configure TTS provider: %w", err)
		}
		speaker = voice.NewSpeaker(provider, voice.SynthesizeOptions{
			Speed: c.Float("speed"),
		})
	}

	session, err := engine.NewSession(engine.Config{
		Case:         cas,
		Generator:    generator,
		Speaker:      speaker,
		AudioEnabled: speaker != nil,
	})
	if err != nil {
		return err
	}

	return runREPL(ctx, session)
}

// newGenerator picks the reply backend: Gemini when a key is configured,
// otherwise the offline stub so the case stays playable.
func newGenerator(ctx context.Context, model string) (llm.Generator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set; replies will be stubbed")
		return llm.NewScripted(), nil
	}
	gen, err := llm.NewGemini(ctx, apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gen, nil
}

func runREPL(ctx context.Context, session *engine.Session) error {
	cas := session.Case()
	titleColor.Println(cas.Title)
	fmt.Println()
	fmt.Println(cas.Lead)

	scanner := bufio.NewScanner(os.Stdin)
	printRoster(session)

	for {
		printPrompt(session)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			done, err := runCommand(session, line)
			if err != nil {
				fmt.Println(err)
			}
			if done || session.Outcome().Terminal() {
				return nil
			}
			continue
		}

		if session.Active() == nil {
			selectFromRoster(session, line)
			continue
		}

		if err := session.Send(ctx, line); err != nil {
			fmt.Println(err)
			continue
		}
		printLastReply(session)
	}
}

func runCommand(session *engine.Session, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/quit", "/q":
		return true, nil
	case "/back", "/b":
		session.Back()
		printRoster(session)
		return false, nil
	case "/guess", "/g":
		if rest == "" {
			return false, fmt.Errorf("usage: /guess <your accusation>")
		}
		outcome, err := session.SubmitGuess(rest)
		if err != nil {
			return false, err
		}
		printVerdict(session, outcome)
		return false, nil
	case "/audio":
		switch rest {
		case "on":
			session.SetAudio(true)
		case "off":
			session.SetAudio(false)
		default:
			return false, fmt.Errorf("usage: /audio on|off")
		}
		return false, nil
	case "/help", "/h":
		printHelp()
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %s (try /help)", cmd)
	}
}

func printRoster(session *engine.Session) {
	fmt.Println()
	fmt.Println("Who do you want to question?")
	for i, p := range session.Personas() {
		fmt.Printf("  %d. %s\n", i+1, personaColor.Sprint(p.Name))
	}
	faintColor.Println("Pick a number or a name. /guess <accusation> to accuse, /help for more.")
}

func selectFromRoster(session *engine.Session, line string) {
	personas := session.Personas()
	var target *content.Persona

	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(personas) {
		target = personas[n-1]
	} else {
		needle := strings.ToLower(line)
		for _, p := range personas {
			if strings.ToLower(p.Name) == needle || p.ID == needle {
				target = p
				break
			}
		}
	}

	if target == nil {
		fmt.Printf("No suspect called %q here.\n", line)
		return
	}
	if err := session.SelectPersona(target.ID); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println()
	personaColor.Printf("— %s —\n", target.Name)
	for _, e := range session.Visible(target.ID) {
		printEntry(target.Name, e)
	}
}

func printPrompt(session *engine.Session) {
	if p := session.Active(); p != nil {
		playerColor.Printf("you → %s> ", p.Name)
	} else {
		playerColor.Print("> ")
	}
}

func printLastReply(session *engine.Session) {
	p := session.Active()
	if p == nil {
		return
	}
	entries := session.Visible(p.ID)
	if len(entries) == 0 {
		return
	}
	last := entries[len(entries)-1]
	if last.Role == engine.RolePersona {
		printEntry(p.Name, last)
	}
}

func printEntry(name string, e engine.Entry) {
	switch e.Role {
	case engine.RolePlayer:
		playerColor.Printf("you: %s\n", e.Text)
	case engine.RolePersona:
		fmt.Printf("%s: %s\n", personaColor.Sprint(name), e.Text)
	}
}

func printVerdict(session *engine.Session, outcome engine.Outcome) {
	cas := session.Case()
	fmt.Println()
	if outcome == engine.OutcomeSolved {
		verdictColor.Println("Case closed.")
		fmt.Println(cas.Endings.Solved)
	} else {
		verdictColor.Println("Wrong call.")
		fmt.Println(cas.Endings.Failed)
	}
	log.Debug().Str("guess", session.LastGuess()).Msg("Session finished")
}

func printHelp() {
	fmt.Println(`Commands:
  /back           Return to the suspect list
  /guess <text>   Make your final accusation (ends the game)
  /audio on|off   Toggle voiced replies
  /quit           Leave the game
On the suspect list, type a number or a name to start questioning.`)
}
