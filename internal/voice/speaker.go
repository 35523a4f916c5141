package voice

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"

	"inquest/internal/content"
)

// Speaker voices persona replies through a Provider and a local audio
// player. At most one clip plays at a time; starting a new one or calling
// Stop interrupts the current playback and releases its temp file.
type Speaker struct {
	provider Provider
	defaults SynthesizeOptions

	mu      sync.Mutex
	playing *exec.Cmd
	file    string
}

// NewSpeaker creates a speaker on the given provider.
func NewSpeaker(provider Provider, defaults SynthesizeOptions) *Speaker {
	return &Speaker{provider: provider, defaults: defaults}
}

// Speak synthesizes and plays one reply. The persona's voice descriptor
// selects the voice tag; structured descriptors prepend their delivery
// instructions to the synthesized text.
func (s *Speaker) Speak(ctx context.Context, text string, voice *content.VoiceSpec) error {
	if text == "" {
		return nil
	}

	options := s.defaults
	speech := text
	if voice != nil {
		if voice.Tag != "" {
			options.Voice = voice.Tag
		}
		if voice.Instructions != "" {
			speech = voice.Instructions + "\n\n" + text
		}
	}

	audio, err := s.provider.Synthesize(ctx, speech, options)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}
	defer audio.Close()

	file, err := os.CreateTemp("", "inquest-reply-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	if _, err := io.Copy(file, audio); err != nil {
		file.Close()
		os.Remove(file.Name())
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	file.Close()

	return s.play(ctx, file.Name())
}

// Stop interrupts any playing clip and removes its temp file.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Speaker) play(ctx context.Context, path string) error {
	player, args, err := findPlayer()
	if err != nil {
		os.Remove(path)
		return err
	}

	s.mu.Lock()
	s.stopLocked()
	cmd := exec.CommandContext(ctx, player, append(args, path)...)
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		os.Remove(path)
		return fmt.Errorf("failed to start audio player: %w", err)
	}
	s.playing = cmd
	s.file = path
	s.mu.Unlock()

	log.Debug().Str("player", player).Str("file", path).Msg("Playing reply audio")

	err = cmd.Wait()

	s.mu.Lock()
	if s.playing == cmd {
		s.playing = nil
		s.file = ""
		os.Remove(path)
	}
	s.mu.Unlock()

	// A kill from Stop is a normal interruption, not a failure.
	if err != nil && ctx.Err() == nil {
		log.Debug().Err(err).Msg("Audio player exited")
	}
	return nil
}

func (s *Speaker) stopLocked() {
	if s.playing != nil && s.playing.Process != nil {
		_ = s.playing.Process.Kill()
	}
	if s.file != "" {
		os.Remove(s.file)
	}
	s.playing = nil
	s.file = ""
}

// findPlayer picks the first available command-line audio player.
func findPlayer() (string, []string, error) {
	type candidate struct {
		name string
		args []string
	}
	var candidates []candidate
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, candidate{name: "afplay"})
	}
	candidates = append(candidates,
		candidate{name: "mpg123", args: []string{"-q"}},
		candidate{name: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		candidate{name: "mpv", args: []string{"--no-video", "--really-quiet"}},
	)
	for _, c := range candidates {
		if _, err := exec.LookPath(c.name); err == nil {
			return c.name, c.args, nil
		}
	}
	return "", nil, fmt.Errorf("no audio player found (tried afplay, mpg123, ffplay, mpv)")
}
