// Package config loads the analyzer configuration. Global settings come from
// .t3scan/config.json under the working directory; per-installation path
// overrides come from a t3scan-paths.toml file in the installation root and
// merge into the request configuration snapshot.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StateDirName is the working-directory subdirectory holding the analyzer's
// own files (configuration, persistent cache).
const StateDirName = ".t3scan"

// Config represents the complete t3scan configuration.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Resolution ResolutionConfig `json:"resolution" mapstructure:"resolution"`
	Cache      CacheConfig      `json:"cache" mapstructure:"cache"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ResolutionConfig contains path resolution defaults applied to every
// request the CLI builds.
type ResolutionConfig struct {
	FollowSymlinks    bool `json:"followSymlinks" mapstructure:"followSymlinks"`
	ValidateExistence bool `json:"validateExistence" mapstructure:"validateExistence"`
	MaxDepth          int  `json:"maxDepth" mapstructure:"maxDepth"`
}

// CacheConfig contains cache configuration.
type CacheConfig struct {
	Enabled        bool `json:"enabled" mapstructure:"enabled"`
	TTLSeconds     int  `json:"ttlSeconds" mapstructure:"ttlSeconds"`
	PersistentTier bool `json:"persistentTier" mapstructure:"persistentTier"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Resolution: ResolutionConfig{
			FollowSymlinks:    true,
			ValidateExistence: true,
			MaxDepth:          5,
		},
		Cache: CacheConfig{
			Enabled:        true,
			TTLSeconds:     900,
			PersistentTier: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from {workDir}/.t3scan/config.json. An
// absent file yields the defaults.
func LoadConfig(workDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workDir, StateDirName))

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
	return cfg, nil
}

// Save writes the configuration to {workDir}/.t3scan/config.json.
func (c *Config) Save(workDir string) error {
	stateDir := filepath.Join(workDir, StateDirName)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(stateDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Cache.TTLSeconds < 0 {
		return &ConfigError{Field: "cache.ttlSeconds", Message: "must not be negative"}
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
