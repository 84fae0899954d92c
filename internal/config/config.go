// Package config handles loading and parsing of pipecomplete configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/pipecomplete/internal/completion"
	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	"pipecomplete.yml",
	"pipecomplete.yaml",
	"pipecomplete.toml",
	"pipecomplete.json",
}

// Config represents a pipecomplete configuration
type Config struct {
	LogLevel  string `koanf:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat string `koanf:"log_format" json:"log_format" yaml:"log_format"`
	// Registry is the path of a stage catalog file; empty means the embedded catalog
	Registry       string                `koanf:"registry" json:"registry,omitempty" yaml:"registry,omitempty"`
	MaxInputLength int                   `koanf:"max_input_length" json:"max_input_length" yaml:"max_input_length"`
	Thresholds     completion.Thresholds `koanf:"thresholds" json:"thresholds" yaml:"thresholds"`
	// Templates overrides explanation templates by name (stage, option, value, default, pipe)
	Templates map[string]string `koanf:"templates" json:"templates,omitempty" yaml:"templates,omitempty"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		LogLevel:       "warn",
		LogFormat:      logger.FormatText,
		MaxInputLength: completion.DefaultMaxInputLength,
		Thresholds:     completion.DefaultThresholds(),
		Templates:      map[string]string{},
	}
}

// GetConfigDir returns the directory holding the user configuration
func GetConfigDir() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "pipecomplete"), nil
}

// FindConfigFile returns the first supported config file in dir, or "" if none exists
func FindConfigFile(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// Load reads the configuration at path. An empty path looks for a file in
// the user config directory and falls back to defaults when there is none.
// An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	info, err := GetInfo(path)
	if err != nil {
		return nil, err
	}
	return info.Config, nil
}

// Parse decodes configuration content; the format is taken from name's extension
func Parse(name string, data []byte) (*Config, error) {
	parser, err := parserFor(name)
	if err != nil {
		return nil, derrors.NewConfigurationError(name, err.Error(), nil)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, derrors.NewConfigurationError(name, "failed to load config", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(name, "failed to unmarshal config", err)
	}
	if cfg.Templates == nil {
		cfg.Templates = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, derrors.NewConfigurationError(name, "invalid config", err)
	}

	// a relative catalog path is resolved against the config file
	if cfg.Registry != "" && !filepath.IsAbs(cfg.Registry) && filepath.IsAbs(name) {
		cfg.Registry = filepath.Join(filepath.Dir(name), cfg.Registry)
	}
	return cfg, nil
}
