// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML fields like "50ms" or "5s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MapConfig describes one selectable simulation topology.
type MapConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Config is the root configuration of the dashboard client.
type Config struct {
	BackendURL     string      `yaml:"backend_url"`
	RequestTimeout Duration    `yaml:"request_timeout"`
	PollInterval   Duration    `yaml:"poll_interval"`
	Maps           []MapConfig `yaml:"maps"`
	DefaultMap     string      `yaml:"default_map"`
}

// Load loads YAML config and validates it against a CUE schema. Environment
// variables TRAFFIC_BACKEND_URL and POLL_INTERVAL override file values.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if env := os.Getenv("TRAFFIC_BACKEND_URL"); env != "" {
		cfg.BackendURL = env
	}
	if env := os.Getenv("POLL_INTERVAL"); env != "" {
		d, err := time.ParseDuration(env)
		if err != nil {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = Duration(d)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BackendURL == "" {
		c.BackendURL = "http://localhost:8001"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = Duration(5 * time.Second)
	}
	if c.PollInterval <= 0 {
		c.PollInterval = Duration(50 * time.Millisecond)
	}
	if len(c.Maps) == 0 {
		c.Maps = []MapConfig{
			{ID: "intersection", Label: "Simple Intersection"},
			{ID: "bangalore", Label: "Bangalore Silk Junction"},
		}
	}
	if c.DefaultMap == "" {
		c.DefaultMap = c.Maps[0].ID
	}
}

// Validate checks cross-field constraints that the CUE schema cannot express.
func (c *Config) Validate() error {
	if !c.HasMap(c.DefaultMap) {
		return fmt.Errorf("default_map %q is not in the maps list", c.DefaultMap)
	}
	return nil
}

// HasMap reports whether id is a configured map.
func (c *Config) HasMap(id string) bool {
	for _, m := range c.Maps {
		if m.ID == id {
			return true
		}
	}
	return false
}
