// internal/template/template.go
// Conversation templates: per-participant model, system prompt, and seed
// context. Templates are YAML files in the user config dir; one template is
// built in so the tool works out of the box.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SeedMessage is one pre-loaded context entry, written from the owning
// participant's perspective.
type SeedMessage struct {
	Role    string `yaml:"role"` // user, assistant, system
	Content string `yaml:"content"`
}

// ParticipantSpec declares one conversation slot.
type ParticipantSpec struct {
	Model     string        `yaml:"model"` // registry key
	System    string        `yaml:"system,omitempty"`
	Seed      []SeedMessage `yaml:"seed,omitempty"`
	MaxTokens int           `yaml:"max_tokens,omitempty"` // zero means the config default
}

// Template is a complete scripted-conversation setup.
type Template struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	MaxTurns     int               `yaml:"max_turns,omitempty"` // zero means the config default
	Participants []ParticipantSpec `yaml:"participants"`
}

// Validate checks the shape before any run starts.
func (t *Template) Validate() error {
	if len(t.Participants) < 2 {
		return fmt.Errorf("template %q needs at least 2 participants, has %d", t.Name, len(t.Participants))
	}
	for i, p := range t.Participants {
		if p.Model == "" {
			return fmt.Errorf("template %q participant %d has no model", t.Name, i)
		}
		for _, s := range p.Seed {
			switch s.Role {
			case "user", "assistant", "system":
			default:
				return fmt.Errorf("template %q participant %d seed role %q is invalid", t.Name, i, s.Role)
			}
		}
	}
	return nil
}

// Dir is where user templates live.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "backrooms", "templates")
}

// Load finds a template by name: a user file <name>.yaml first, then the
// built-in set.
func Load(name string) (*Template, error) {
	path := filepath.Join(Dir(), name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if t, ok := builtins[name]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("template %q not found", name)
	}

	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns the available template names, user files plus built-ins,
// deduplicated and sorted.
func List() []string {
	seen := make(map[string]bool)
	for name := range builtins {
		seen[name] = true
	}

	entries, err := os.ReadDir(Dir())
	if err == nil {
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
				continue
			}
			seen[strings.TrimSuffix(name, ".yaml")] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
