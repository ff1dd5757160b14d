// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Session Session `yaml:"session"`
	Book    Book    `yaml:"book"`
}

// Session holds interaction loop settings.
type Session struct {
	Prompt   string `yaml:"prompt"`
	Greeting string `yaml:"greeting"`
	Farewell string `yaml:"farewell"`
	Plain    bool   `yaml:"plain"` // Force the plain line-mode session even on a TTY.
}

// Book holds address book query settings.
type Book struct {
	WindowDays int `yaml:"window_days"` // Lookahead for the birthdays report.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Session: Session{
			Prompt:   "Enter a command: ",
			Greeting: "Welcome to the assistant bot!",
			Farewell: "Goodbye!",
		},
		Book: Book{
			WindowDays: 7,
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Session.Prompt == "" {
		return errors.New("config: session.prompt cannot be empty")
	}
	if c.Session.Greeting == "" {
		return errors.New("config: session.greeting cannot be empty")
	}
	if c.Session.Farewell == "" {
		return errors.New("config: session.farewell cannot be empty")
	}
	if c.Book.WindowDays <= 0 {
		return fmt.Errorf("config: book.window_days must be positive, got %d", c.Book.WindowDays)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_PROMPT, ROLODEX_PLAIN, ROLODEX_WINDOW_DAYS.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ROLODEX_PROMPT"); v != "" {
		c.Session.Prompt = v
	}
	if v := os.Getenv("ROLODEX_PLAIN"); v != "" {
		plain, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_PLAIN %q: %w", v, err)
		}
		c.Session.Plain = plain
	}
	if v := os.Getenv("ROLODEX_WINDOW_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ROLODEX_WINDOW_DAYS %q: %w", v, err)
		}
		c.Book.WindowDays = days
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Session *rawSession `yaml:"session"`
	Book    *rawBook    `yaml:"book"`
}

type rawSession struct {
	Prompt   *string `yaml:"prompt"`
	Greeting *string `yaml:"greeting"`
	Farewell *string `yaml:"farewell"`
	Plain    *bool   `yaml:"plain"`
}

type rawBook struct {
	WindowDays *int `yaml:"window_days"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Session != nil {
		if layer.Session.Prompt != nil {
			c.Session.Prompt = *layer.Session.Prompt
		}
		if layer.Session.Greeting != nil {
			c.Session.Greeting = *layer.Session.Greeting
		}
		if layer.Session.Farewell != nil {
			c.Session.Farewell = *layer.Session.Farewell
		}
		if layer.Session.Plain != nil {
			c.Session.Plain = *layer.Session.Plain
		}
	}
	if layer.Book != nil {
		if layer.Book.WindowDays != nil {
			c.Book.WindowDays = *layer.Book.WindowDays
		}
	}
}
