// Package config loads driver and policy settings from YAML. Decision graphs
// themselves are authored in code; only scheduling and per-agent policies are
// configurable.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/LASTEXILE-CH/ReflexityAI/core"
)

// AgentConfig holds the resolved policies of one configured agent.
type AgentConfig struct {
	Name        string
	Interaction core.Interaction
	Resolution  core.Resolution
}

// Config is the validated configuration surface of the decision cycle driver.
type Config struct {
	// TickInterval spaces decision ticks apart.
	TickInterval time.Duration

	// Interaction and Resolution are the defaults applied to agents that do
	// not override them.
	Interaction core.Interaction
	Resolution  core.Resolution

	// Agents lists the configured agents with defaults applied.
	Agents []AgentConfig
}

type rawConfig struct {
	TickInterval string     `yaml:"tick_interval"`
	Interaction  string     `yaml:"interaction"`
	Resolution   string     `yaml:"resolution"`
	Agents       []rawAgent `yaml:"agents"`
}

type rawAgent struct {
	Name        string `yaml:"name"`
	Interaction string `yaml:"interaction"`
	Resolution  string `yaml:"resolution"`
}

// Defaults returns the configuration used when a field is omitted.
func Defaults() *Config {
	return &Config{
		TickInterval: 100 * time.Millisecond,
		Interaction:  core.Cooperative,
		Resolution:   core.Robotic,
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applying defaults to omitted fields.
// Unknown policy strings and malformed durations fail here rather than at
// tick time.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Defaults()

	if raw.TickInterval != "" {
		d, err := time.ParseDuration(raw.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parse config: tick_interval: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("parse config: tick_interval %s must be positive", d)
		}
		cfg.TickInterval = d
	}
	if raw.Interaction != "" {
		i, err := core.ParseInteraction(raw.Interaction)
		if err != nil {
			return nil, fmt.Errorf("parse config: interaction: %w", err)
		}
		cfg.Interaction = i
	}
	if raw.Resolution != "" {
		r, err := core.ParseResolution(raw.Resolution)
		if err != nil {
			return nil, fmt.Errorf("parse config: resolution: %w", err)
		}
		cfg.Resolution = r
	}

	for _, a := range raw.Agents {
		if a.Name == "" {
			return nil, fmt.Errorf("parse config: agent entry missing name")
		}
		ac := AgentConfig{Name: a.Name, Interaction: cfg.Interaction, Resolution: cfg.Resolution}
		if a.Interaction != "" {
			i, err := core.ParseInteraction(a.Interaction)
			if err != nil {
				return nil, fmt.Errorf("parse config: agent %q: interaction: %w", a.Name, err)
			}
			ac.Interaction = i
		}
		if a.Resolution != "" {
			r, err := core.ParseResolution(a.Resolution)
			if err != nil {
				return nil, fmt.Errorf("parse config: agent %q: resolution: %w", a.Name, err)
			}
			ac.Resolution = r
		}
		cfg.Agents = append(cfg.Agents, ac)
	}

	return cfg, nil
}
