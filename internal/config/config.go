// Package config loads jdisco's configuration from .jdisco/config.json
// under the scan root, plus an optional TOML pattern-vocabulary override.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete jdisco configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Reports ReportsConfig `json:"reports" mapstructure:"reports"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// PatternsFile points at a TOML vocabulary override, relative to the
	// scan root. Empty means builtin vocabulary only.
	PatternsFile string `json:"patternsFile" mapstructure:"patternsFile"`
}

// ScanConfig contains scan pipeline settings
type ScanConfig struct {
	Workers            int      `json:"workers" mapstructure:"workers"`
	StatementThreshold int      `json:"statementThreshold" mapstructure:"statementThreshold"`
	MaxFileSizeBytes   int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	Ignore             []string `json:"ignore" mapstructure:"ignore"`
}

// ReportsConfig contains report rendering settings
type ReportsConfig struct {
	OutputDir string `json:"outputDir" mapstructure:"outputDir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanConfig{
			Workers:            0, // NumCPU
			StatementThreshold: 0, // scorer default
			MaxFileSizeBytes:   1 << 20,
			Ignore:             []string{".git", ".svn", ".hg", ".jdisco", "node_modules", "target", "build", "output"},
		},
		Reports: ReportsConfig{
			OutputDir: "output",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load loads configuration from <root>/.jdisco/config.json, falling back to
// defaults when the file doesn't exist.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".jdisco"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.jdisco/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".jdisco")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.Workers < 0 {
		return &ConfigError{Field: "scan.workers", Message: "must not be negative"}
	}
	if c.Scan.StatementThreshold < 0 {
		return &ConfigError{Field: "scan.statementThreshold", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
