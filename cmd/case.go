package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"inquest/internal/content"
)

func handleCaseShow(ctx context.Context, c *cli.Command) error {
	path := c.Args().Get(0)
	if path == "" {
		path = c.String("case")
	}
	cas, err := content.LoadCase(path)
	if err != nil {
		return err
	}

	titleColor.Println(cas.Title)
	fmt.Println()
	fmt.Println(cas.Lead)
	fmt.Println()
	fmt.Println("Suspects:")
	for _, p := range cas.Personas {
		line := fmt.Sprintf("  - %s (%s)", p.Name, p.ID)
		if p.Voice != nil && p.Voice.Tag != "" {
			line += fmt.Sprintf(", voice: %s", p.Voice.Tag)
		}
		if p.Gate != nil {
			line += ", gated"
		}
		fmt.Println(line)
	}
	return nil
}

func handleCaseValidate(ctx context.Context, c *cli.Command) error {
	path := c.Args().Get(0)
	if path == "" {
		return fmt.Errorf("case file path is required")
	}
	cas, err := content.LoadCase(path)
	if err != nil {
		return err
	}
	fmt.Printf("OK: %s (%d personas)\n", cas.Title, len(cas.Personas))
	return nil
}
