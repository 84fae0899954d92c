// Package cli implements the pipecomplete commands.
package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/pipecomplete/internal/completion"
	"github.com/NikitaCOEUR/pipecomplete/internal/config"
	"github.com/NikitaCOEUR/pipecomplete/internal/logger"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

// Output formats
const (
	FormatText   = "text"
	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// components holds initialized pipecomplete components
type components struct {
	config *config.Config
	log    *logger.Logger
	store  *registry.Store
	engine *completion.Engine
}

// loadConfig loads the configuration and builds the logger.
// Non-empty logLevel and registryPath override the configured values.
func loadConfig(configPath, registryPath, logLevel string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if registryPath != "" {
		cfg.Registry = registryPath
	}
	return cfg, logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stderr), nil
}

// initializeComponents loads the configuration and builds the registry and engine
func initializeComponents(configPath, registryPath, logLevel string) (*components, error) {
	cfg, log, err := loadConfig(configPath, registryPath, logLevel)
	if err != nil {
		return nil, err
	}

	explainer, err := completion.NewExplainer(cfg.Thresholds, cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize explanations: %w", err)
	}

	store := registry.NewStore(registry.SourceFor(cfg.Registry), log)
	engine := completion.NewEngine(store,
		completion.WithLogger(log),
		completion.WithExplainer(explainer),
		completion.WithMaxInputLength(cfg.MaxInputLength),
	)

	return &components{
		config: cfg,
		log:    log,
		store:  store,
		engine: engine,
	}, nil
}

// loadSnapshot reads and validates the catalog at path, or the embedded one
func loadSnapshot(path string) (*registry.Snapshot, error) {
	kinds, err := registry.SourceFor(path).ListStageKinds()
	if err != nil {
		return nil, err
	}
	return registry.NewSnapshot(kinds)
}
