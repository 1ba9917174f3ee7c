package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	simplify "github.com/reoring/simplify"
)

// Config is the CLI configuration. Values come from an optional YAML file
// and are overridden by flags.
type Config struct {
	Schema        string `yaml:"schema"`
	Type          string `yaml:"type"`
	Language      string `yaml:"language"`
	LogLevel      string `yaml:"log_level"`
	DuplicateKeys string `yaml:"duplicate_keys"` // ignore, warn or error
	Output        string `yaml:"output"`         // json or yaml
}

func defaultConfig() Config {
	return Config{
		Language:      "en",
		LogLevel:      "info",
		DuplicateKeys: "ignore",
		Output:        "json",
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.DuplicateKeys) {
	case "ignore", "warn", "error":
	default:
		return fmt.Errorf("duplicate_keys must be ignore, warn or error, got %q", c.DuplicateKeys)
	}
	switch strings.ToLower(c.Output) {
	case "json", "yaml":
	default:
		return fmt.Errorf("output must be json or yaml, got %q", c.Output)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

func (c Config) duplicateSeverity() simplify.Severity {
	switch strings.ToLower(c.DuplicateKeys) {
	case "warn":
		return simplify.Warn
	case "error":
		return simplify.Error
	default:
		return simplify.Ignore
	}
}
