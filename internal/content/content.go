package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is a non-player character the player can question. The Brief is
// the system-level instruction handed to the generation backend; it never
// changes during a turn. Turn-specific gating directives are layered on top
// by the engine and are not part of the persona record.
type Persona struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Brief    string     `yaml:"brief"`
	Voice    *VoiceSpec `yaml:"voice,omitempty"`
	Portrait string     `yaml:"portrait,omitempty"`
	Gate     *Gate      `yaml:"gate,omitempty"`
}

// VoiceSpec selects a synthesis voice for a persona. In YAML it is either a
// plain tag ("onyx") or a mapping with a tag and extra delivery
// instructions that are prepended to the synthesized text.
type VoiceSpec struct {
	Tag          string `yaml:"tag"`
	Instructions string `yaml:"instructions,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the structured form.
func (v *VoiceSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v.Tag = node.Value
		return nil
	case yaml.MappingNode:
		type plain VoiceSpec
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*v = VoiceSpec(p)
		return nil
	default:
		return fmt.Errorf("voice must be a tag or a {tag, instructions} mapping")
	}
}

// Gate describes a persona's progressive-disclosure rule: the persona
// reveals its gated fact only once the named behavior counter reaches the
// threshold and the qualifying signal fires in the current turn. All
// directive texts are case content, not code.
type Gate struct {
	Counter           string     `yaml:"counter"`
	Threshold         int        `yaml:"threshold"`
	Signal            string     `yaml:"signal"`
	HintCooldown      int        `yaml:"hintCooldown"`
	ForbiddenKeywords []string   `yaml:"forbiddenKeywords,omitempty"`
	Directives        Directives `yaml:"directives"`
}

// Directives are the instruction fragments the engine assembles into the
// per-turn augmentation. Withhold may reference {received} and {needed};
// the engine substitutes the running counts before sending it to the
// backend. None of these texts are shown to the player directly.
type Directives struct {
	Reveal      string `yaml:"reveal"`
	Appeased    string `yaml:"appeased"`
	Withhold    string `yaml:"withhold"`
	Hint        string `yaml:"hint"`
	NoHint      string `yaml:"noHint"`
	RepeatFull  string `yaml:"repeatFull"`
	RepeatVague string `yaml:"repeatVague"`
	Forbidden   string `yaml:"forbidden"`
	Standing    string `yaml:"standing"`
}

// Keywords are the case-specific classifier vocabularies. Incident words
// mark an utterance as being about the case's central event; intent words
// mark it as a question rather than a mention.
type Keywords struct {
	Incident []string `yaml:"incident"`
	Intent   []string `yaml:"intent"`
}

// Endings hold the epilogue texts rendered once the session reaches a
// terminal outcome.
type Endings struct {
	Solved string `yaml:"solved"`
	Failed string `yaml:"failed"`
}

// Case bundles everything a session needs: the briefing shown on the
// selection screen, the persona set, the classifier vocabularies and the
// accepted solution phrase.
type Case struct {
	Title    string     `yaml:"title"`
	Lead     string     `yaml:"lead"`
	Solution string     `yaml:"solution"`
	Keywords Keywords   `yaml:"keywords"`
	Endings  Endings    `yaml:"endings"`
	Personas []*Persona `yaml:"personas"`
}

// PersonaByID returns the persona with the given id, or nil.
func (c *Case) PersonaByID(id string) *Persona {
	for _, p := range c.Personas {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Validate checks the structural invariants a playable case must satisfy.
func (c *Case) Validate() error {
	if strings.TrimSpace(c.Solution) == "" {
		return fmt.Errorf("case %q has no solution phrase", c.Title)
	}
	if len(c.Personas) == 0 {
		return fmt.Errorf("case %q has no personas", c.Title)
	}
	seen := make(map[string]bool, len(c.Personas))
	for _, p := range c.Personas {
		if p.ID == "" {
			return fmt.Errorf("persona %q has no id", p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate persona id %q", p.ID)
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Brief) == "" {
			return fmt.Errorf("persona %q has no brief", p.ID)
		}
		if g := p.Gate; g != nil {
			if g.Counter == "" {
				return fmt.Errorf("persona %q gate has no counter name", p.ID)
			}
			if g.Threshold <= 0 {
				return fmt.Errorf("persona %q gate threshold must be positive", p.ID)
			}
			if g.Directives.Reveal == "" || g.Directives.Withhold == "" {
				return fmt.Errorf("persona %q gate needs reveal and withhold directives", p.ID)
			}
		}
	}
	return nil
}
