// Package status provides status information collection and display for pipecomplete.
package status

import (
	"os"
	"sort"

	"github.com/samber/lo"

	"github.com/NikitaCOEUR/pipecomplete/internal/config"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
	"github.com/NikitaCOEUR/pipecomplete/pkg/version"
)

const embeddedSource = "embedded"

// CollectAll gathers status information for the given config file and
// catalog override. Load failures are reported in Data, not returned.
func CollectAll(configPath, registryPath string) *Data {
	data := &Data{
		Version:           version.Version,
		TemplateOverrides: make([]string, 0),
	}

	cfg := collectConfigInfo(data, configPath)
	if registryPath == "" {
		registryPath = cfg.Registry
	}
	data.Registry = collectRegistryInfo(registryPath)

	return data
}

func collectConfigInfo(data *Data, configPath string) *config.Config {
	info, err := config.GetInfo(configPath)
	if err != nil {
		data.ConfigPath = config.Resolve(configPath)
		data.ConfigOrigin = config.OriginFile
		data.ConfigError = err.Error()
		info = &config.Info{Config: config.Default()}
	} else {
		data.ConfigPath = info.Path
		data.ConfigOrigin = info.Origin
	}

	cfg := info.Config
	data.LogLevel = cfg.LogLevel
	data.LogFormat = cfg.LogFormat
	data.MaxInputLength = cfg.MaxInputLength
	data.Thresholds = cfg.Thresholds
	data.TemplateOverrides = append(data.TemplateOverrides, lo.Keys(cfg.Templates)...)
	sort.Strings(data.TemplateOverrides)
	return cfg
}

func collectRegistryInfo(path string) *RegistryInfo {
	info := &RegistryInfo{Source: path}
	if path == "" {
		info.Source = embeddedSource
		info.Size = int64(len(registry.DefaultCatalog()))
	} else if fi, err := os.Stat(path); err == nil {
		info.Size = fi.Size()
	}

	kinds, err := registry.SourceFor(path).ListStageKinds()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	snap, err := registry.NewSnapshot(kinds)
	if err != nil {
		info.Error = err.Error()
		return info
	}

	for _, kind := range snap.Kinds() {
		info.Stages = append(info.Stages, summarize(kind))
	}
	return info
}

func summarize(kind registry.StageKind) StageSummary {
	required := lo.CountBy(kind.Options, func(o registry.OptionSpec) bool {
		return o.Required
	})
	return StageSummary{
		Name:     kind.Name,
		Role:     kind.Role,
		Options:  len(kind.Options),
		Required: required,
	}
}
