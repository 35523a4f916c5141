package llm

import (
	"context"
	"fmt"
)

// Role marks who produced a turn in the history handed to the backend.
type Role string

const (
	RolePlayer  Role = "player"
	RolePersona Role = "persona"
)

// Turn is one exchange in the conversation history.
type Turn struct {
	Role Role
	Text string
}

// Input carries everything a backend needs for one reply: the composed
// system brief (base brief plus any turn-specific augmentation) and the
// ordered history of the conversation so far.
type Input struct {
	PersonaName string
	Brief       string
	History     []Turn
}

// Generator produces a persona reply. Implementations must treat failures
// as per-turn events and return a GenerationError so callers can keep the
// session alive.
type Generator interface {
	Generate(ctx context.Context, in Input) (string, error)
}

// GenerationError wraps any transport or backend failure during a
// generation call. It is recoverable: the session shows an inline error
// entry and stays playable.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
