// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// Selection is a persisted custom-model choice for one participant slot.
type Selection struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	Providers struct {
		Hyperbolic ProviderConfig `yaml:"hyperbolic"`
		OpenRouter ProviderConfig `yaml:"openrouter"`
	} `yaml:"providers"`
	Defaults struct {
		Template     string `yaml:"template"`
		MaxTurns     int    `yaml:"max_turns"`
		MaxTokens    int    `yaml:"max_tokens"`
		PollInterval int    `yaml:"poll_interval"` // milliseconds
		WebhookURL   string `yaml:"webhook_url,omitempty"`
	} `yaml:"defaults"`
	// CustomModels maps a participant slot index to its chosen model.
	// String keys because yaml mangles int map keys on round-trips.
	CustomModels map[string]Selection `yaml:"custom_models,omitempty"`
}

func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}

	// Expand environment variables so API keys can live in the environment
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config back, creating the directory if needed. Used to
// persist custom-model selections.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// SetCustomModel records a selection for a participant slot.
func (c *Config) SetCustomModel(slot int, sel Selection) {
	if c.CustomModels == nil {
		c.CustomModels = make(map[string]Selection)
	}
	c.CustomModels[strconv.Itoa(slot)] = sel
}

// Resolve returns the persisted selection for a participant slot. Backs
// the engine's custom-model resolver.
func (c *Config) Resolve(slot int) (Selection, bool) {
	sel, ok := c.CustomModels[strconv.Itoa(slot)]
	return sel, ok
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Providers.Hyperbolic.APIKey = os.Getenv("HYPERBOLIC_API_KEY")
	cfg.Providers.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Defaults.Template == "" {
		cfg.Defaults.Template = "backrooms"
	}
	if cfg.Defaults.MaxTurns == 0 {
		cfg.Defaults.MaxTurns = 30
	}
	if cfg.Defaults.MaxTokens == 0 {
		cfg.Defaults.MaxTokens = 1024
	}
	if cfg.Defaults.PollInterval == 0 {
		cfg.Defaults.PollInterval = 500
	}
}

func Path() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "backrooms", "config.yaml")
}
