package llm

import (
	"context"
	"fmt"
)

// Scripted is an offline generator used when no API key is configured. It
// echoes the latest player line so a session stays walkable end to end,
// exactly like a stubbed backend.
type Scripted struct{}

func NewScripted() *Scripted {
	return &Scripted{}
}

func (s *Scripted) Generate(_ context.Context, in Input) (string, error) {
	last := "..."
	for i := len(in.History) - 1; i >= 0; i-- {
		if in.History[i].Role == RolePlayer {
			last = in.History[i].Text
			break
		}
	}
	name := in.PersonaName
	if name == "" {
		name = "The persona"
	}
	return fmt.Sprintf("[stub] %s replies: %s", name, last), nil
}

var _ Generator = (*Scripted)(nil)
