package config

import (
	"os"

	"github.com/NikitaCOEUR/pipecomplete/internal/derrors"
)

// Origin tells where the effective configuration came from
type Origin string

// Configuration origins
const (
	OriginFile     Origin = "file"
	OriginDefaults Origin = "defaults"
)

// Info describes the effective configuration and the file it was read from
type Info struct {
	Path   string  `yaml:"path,omitempty"`
	Origin Origin  `yaml:"origin"`
	Config *Config `yaml:"config"`
}

// Resolve returns the config file Load would read for path, or "" when
// defaults would be used
func Resolve(path string) string {
	if path != "" {
		return path
	}
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return FindConfigFile(dir)
}

// GetInfo loads the configuration for path and reports its origin
func GetInfo(path string) (*Info, error) {
	resolved := Resolve(path)
	if resolved == "" {
		return &Info{Origin: OriginDefaults, Config: Default()}, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, derrors.NewConfigurationError(resolved, "failed to read config", err)
	}
	cfg, err := Parse(resolved, data)
	if err != nil {
		return nil, err
	}
	return &Info{Path: resolved, Origin: OriginFile, Config: cfg}, nil
}
