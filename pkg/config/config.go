// Package config loads the host process's runtime settings.
//
// Corresponds to: cmd/auctiond/config.go's Config/DefaultConfig/LoadConfig
// shape in the example pack, adapted from JSON to YAML (gopkg.in/yaml.v3)
// per the domain's logging/config conventions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a host process needs to run the private
// transfer handler standalone: which shard/realm new entities default to,
// whether KYC enforcement is active, and how verbosely to log.
type Config struct {
	DefaultShard uint64 `yaml:"default_shard"`
	DefaultRealm uint64 `yaml:"default_realm"`
	EnforceKYC   bool   `yaml:"enforce_kyc"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DefaultShard: 0,
		DefaultRealm: 0,
		EnforceKYC:   true,
		LogLevel:     "info",
	}
}

// Load reads a YAML config file from path. If the file does not exist, the
// default configuration is returned instead of an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate rejects a log level the logging layer would not recognize.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("config: unrecognized log_level %q", c.LogLevel)
	}
}
