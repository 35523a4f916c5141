package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed doorhandle.yaml
var defaultCase []byte

// DefaultCase returns the embedded door-handle case.
func DefaultCase() (*Case, error) {
	return parse(defaultCase, "embedded default")
}

// LoadCase reads a case file from disk. An empty path yields the embedded
// default case.
func LoadCase(path string) (*Case, error) {
	if path == "" {
		return DefaultCase()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse case %s: %w", source, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid case %s: %w", source, err)
	}
	log.Debug().
		Str("source", source).
		Str("title", c.Title).
		Int("personas", len(c.Personas)).
		Msg("Loaded case")
	return &c, nil
}
