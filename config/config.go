// Package config loads game settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Seed for a new dungeon. Zero picks one from the clock.
	Seed int64 `yaml:"seed"`
	// Content is a directory of Lua content scripts. Empty uses the
	// embedded Temple of Yendor.
	Content string     `yaml:"content"`
	Save    SaveConfig `yaml:"save"`
	Log     LogConfig  `yaml:"log"`
	UI      UIConfig   `yaml:"ui"`
}

// SaveConfig selects where suspended games are kept.
type SaveConfig struct {
	Name        string `yaml:"name"`
	Dir         string `yaml:"dir"`
	DBType      string `yaml:"db_type"` // "postgres" or empty for files
	DatabaseURL string `yaml:"database_url"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	File  string `yaml:"file"`
}

// UIConfig tunes the front ends.
type UIConfig struct {
	Plain bool `yaml:"plain"`
	// PlanDelay is the pause between travel steps, in milliseconds.
	PlanDelay int `yaml:"plan_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Save: SaveConfig{
			Name: "temple",
			Dir:  ".saves",
		},
		Log: LogConfig{
			File: "logs/temple.log",
		},
		UI: UIConfig{
			PlanDelay: 10,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TEMPLE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TEMPLE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.Save.DBType = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Save.DatabaseURL = v
	}
	if v := os.Getenv("TEMPLE_SAVE_DIR"); v != "" {
		c.Save.Dir = v
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Save.DBType {
	case "", "file":
	case "postgres":
		if c.Save.DatabaseURL == "" {
			return fmt.Errorf("save.db_type postgres needs save.database_url or DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown save.db_type %q", c.Save.DBType)
	}
	if c.Save.Name == "" {
		return fmt.Errorf("save.name must not be empty")
	}
	if c.UI.PlanDelay < 0 {
		return fmt.Errorf("ui.plan_delay must not be negative, got %d", c.UI.PlanDelay)
	}
	return nil
}
