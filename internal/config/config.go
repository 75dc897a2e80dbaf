// Package config loads the fbz CLI configuration from a YAML file with
// environment variable fallbacks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the fbz CLI configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds connection settings for the tracker instance.
type APIConfig struct {
	URL        string  `yaml:"url"`
	Token      string  `yaml:"token"`
	UserAgent  string  `yaml:"user_agent"`
	Timeout    int     `yaml:"timeout_sec"`
	RatePerSec float64 `yaml:"rate_per_sec"`
	RateBurst  int     `yaml:"rate_burst"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from the given YAML file. A missing path is
// not an error; the zero Config is returned and env fallbacks apply.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvFallbacks()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnvFallbacks fills connection settings from the environment when
// the file leaves them empty.
func (c *Config) applyEnvFallbacks() {
	if c.API.URL == "" {
		c.API.URL = os.Getenv("FOGBUGZ_URL")
	}
	if c.API.Token == "" {
		c.API.Token = os.Getenv("FOGBUGZ_API_KEY")
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.API.UserAgent == "" {
		c.API.UserAgent = "fbz-cli"
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30
	}
	if c.API.RatePerSec > 0 && c.API.RateBurst <= 0 {
		c.API.RateBurst = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url is required (or set FOGBUGZ_URL)")
	}
	if c.API.Token == "" {
		return fmt.Errorf("api.token is required (or set FOGBUGZ_API_KEY)")
	}
	if c.API.RatePerSec < 0 {
		return fmt.Errorf("api.rate_per_sec must not be negative, got %v", c.API.RatePerSec)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
