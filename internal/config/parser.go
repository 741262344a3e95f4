package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a configuration file from the given path.
// Environment overrides and defaults are applied after parsing, so a
// minimal file plus environment variables is a valid configuration.
func Load(path string) (*Config, error) {
	file, err := os.Open(path) //#nosec G304 -- Path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	defer func() { _ = file.Close() }()

	return LoadFromReader(file)
}

// LoadFromReader parses configuration from any reader
func LoadFromReader(reader io.Reader) (*Config, error) {
	var cfg Config

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true) // Strict parsing - fail on unknown fields

	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			// Empty file; environment variables may still complete it
			cfg = Config{}
		} else {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyEnv()
	cfg.SetDefaults()

	return &cfg, nil
}
