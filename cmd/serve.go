package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"inquest/internal/content"
	"inquest/internal/engine"
)

// handleServe exposes one session as an MCP stdio server so an agent can
// play the case through tool calls. Replies are text only; audio stays a
// terminal feature.
func handleServe(ctx context.Context, c *cli.Command) error {
	cas, err := content.LoadCase(c.String("case"))
	if err != nil {
		return err
	}

	generator, err := newGenerator(ctx, c.String("model"))
	if err != nil {
		return err
	}

	session, err := engine.NewSession(engine.Config{
		Case:      cas,
		Generator: generator,
	})
	if err != nil {
		return err
	}

	s := server.NewMCPServer(
		"inquest",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("case_brief",
			mcp.WithDescription("Get the case title, opening brief and the list of suspects."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(caseBrief(session)), nil
		},
	)

	s.AddTool(
		mcp.NewTool("select_persona",
			mcp.WithDescription("Start questioning a suspect. Any previous conversation with them is kept."),
			mcp.WithString("persona_id",
				mcp.Required(),
				mcp.Description("ID of the suspect to question"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("persona_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := session.SelectPersona(id); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p := session.Active()
			return mcp.NewToolResultText(fmt.Sprintf("Now questioning %s.", p.Name)), nil
		},
	)

	s.AddTool(
		mcp.NewTool("say",
			mcp.WithDescription("Say something to the currently selected suspect and get their reply."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("What to say to the suspect"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			text, err := req.RequireString("text")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p := session.Active()
			if p == nil {
				return mcp.NewToolResultError(engine.ErrNoPersona.Error()), nil
			}
			if err := session.Send(ctx, text); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			entries := session.Visible(p.ID)
			if len(entries) == 0 {
				return mcp.NewToolResultError("no reply recorded"), nil
			}
			last := entries[len(entries)-1]
			return mcp.NewToolResultText(fmt.Sprintf("%s: %s", p.Name, last.Text)), nil
		},
	)

	s.AddTool(
		mcp.NewTool("leave",
			mcp.WithDescription("Stop questioning the current suspect and return to the suspect list."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			session.Back()
			return mcp.NewToolResultText("Back at the suspect list."), nil
		},
	)

	s.AddTool(
		mcp.NewTool("transcript",
			mcp.WithDescription("Get the conversation so far with one suspect."),
			mcp.WithString("persona_id",
				mcp.Required(),
				mcp.Description("ID of the suspect"),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			id, err := req.RequireString("persona_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p := session.Case().PersonaByID(id)
			if p == nil {
				return mcp.NewToolResultError(engine.ErrUnknownPersona.Error()), nil
			}
			entries := session.Visible(id)
			if len(entries) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf("No conversation with %s yet.", p.Name)), nil
			}
			var b strings.Builder
			for _, e := range entries {
				switch e.Role {
				case engine.RolePlayer:
					fmt.Fprintf(&b, "you: %s\n", e.Text)
				case engine.RolePersona:
					fmt.Fprintf(&b, "%s: %s\n", p.Name, e.Text)
				}
			}
			return mcp.NewToolResultText(b.String()), nil
		},
	)

	s.AddTool(
		mcp.NewTool("submit_guess",
			mcp.WithDescription("Make the final accusation. This ends the game either way."),
			mcp.WithString("guess",
				mcp.Required(),
				mcp.Description("The accusation, e.g. \"Frode did it\""),
			),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			guess, err := req.RequireString("guess")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			outcome, err := session.SubmitGuess(guess)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			cas := session.Case()
			if outcome == engine.OutcomeSolved {
				return mcp.NewToolResultText("Case closed.\n\n" + cas.Endings.Solved), nil
			}
			return mcp.NewToolResultText("Wrong call.\n\n" + cas.Endings.Failed), nil
		},
	)

	return server.ServeStdio(s)
}

func caseBrief(session *engine.Session) string {
	cas := session.Case()
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\nSuspects:\n", cas.Title, cas.Lead)
	for _, p := range cas.Personas {
		fmt.Fprintf(&b, "  - %s (id: %s)\n", p.Name, p.ID)
	}
	return b.String()
}
