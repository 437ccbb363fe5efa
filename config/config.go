package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Port   string       `yaml:"port"`
	Layout LayoutConfig `yaml:"layout"`
	Gemini GeminiConfig `yaml:"gemini"`
}

// LayoutConfig selects where the starting world comes from
type LayoutConfig struct {
	Source      string `yaml:"source"` // json, yaml, postgres or random
	File        string `yaml:"file"`
	Name        string `yaml:"name"`
	DatabaseURL string `yaml:"database_url"`
	Width       int    `yaml:"width"`  // random source only
	Height      int    `yaml:"height"` // random source only
	Seed        uint64 `yaml:"seed"`   // random source only
}

// GeminiConfig enables the Gemini narrator when an API key is present
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Layout sources
const (
	SourceJSON     = "json"
	SourceYAML     = "yaml"
	SourcePostgres = "postgres"
	SourceRandom   = "random"
)

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Port: "8080",
		Layout: LayoutConfig{
			Source:      SourceRandom,
			Name:        "default",
			DatabaseURL: "host=localhost user=antworld password=antworld dbname=antworld sslmode=disable",
			Width:       10,
			Height:      10,
			Seed:        1,
		},
	}
}

// Load reads the YAML file at path, if it exists, and applies environment
// overrides on top
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %v", path, err)
			}
			log.Printf("Loaded configuration from %s", path)
		case os.IsNotExist(err):
			log.Printf("Config file not found at %s, using defaults and environment", path)
		default:
			return nil, fmt.Errorf("failed to read config file %s: %v", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %v", key, err)
			}
			*dst = n
		}
		return nil
	}

	setString("PORT", &c.Port)
	setString("LAYOUT_SOURCE", &c.Layout.Source)
	setString("LAYOUT_FILE", &c.Layout.File)
	setString("LAYOUT_NAME", &c.Layout.Name)
	setString("DATABASE_URL", &c.Layout.DatabaseURL)
	setString("GEMINI_API_KEY", &c.Gemini.APIKey)
	setString("GEMINI_MODEL", &c.Gemini.Model)

	if err := setInt("MAP_WIDTH", &c.Layout.Width); err != nil {
		return err
	}
	if err := setInt("MAP_HEIGHT", &c.Layout.Height); err != nil {
		return err
	}
	if v := os.Getenv("SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid SEED: %v", err)
		}
		c.Layout.Seed = seed
	}
	return nil
}

// Validate checks that the selected layout source has what it needs
func (c *Config) Validate() error {
	switch c.Layout.Source {
	case SourceJSON, SourceYAML:
		if c.Layout.File == "" {
			return fmt.Errorf("layout source %s needs a file", c.Layout.Source)
		}
	case SourcePostgres:
		if c.Layout.DatabaseURL == "" {
			return fmt.Errorf("layout source postgres needs a database URL")
		}
	case SourceRandom:
		if c.Layout.Width <= 0 || c.Layout.Height <= 0 {
			return fmt.Errorf("random layout needs positive dimensions, got %dx%d", c.Layout.Width, c.Layout.Height)
		}
	default:
		return fmt.Errorf("unknown layout source %q", c.Layout.Source)
	}
	if c.Layout.Name == "" {
		return fmt.Errorf("layout name is empty")
	}
	return nil
}
