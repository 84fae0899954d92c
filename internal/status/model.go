package status

import (
	"github.com/NikitaCOEUR/pipecomplete/internal/completion"
	"github.com/NikitaCOEUR/pipecomplete/internal/config"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	Version string

	// Configuration
	ConfigPath   string
	ConfigOrigin config.Origin
	ConfigError  string
	LogLevel     string
	LogFormat    string

	// Completion
	MaxInputLength    int
	Thresholds        completion.Thresholds
	TemplateOverrides []string

	// Registry
	Registry *RegistryInfo
}

// RegistryInfo describes the stage catalog in use
type RegistryInfo struct {
	// Source is the catalog file path, or "embedded"
	Source string
	Size   int64
	Error  string
	Stages []StageSummary
}

// StageSummary is one catalog entry as shown by status
type StageSummary struct {
	Name     string
	Role     string
	Options  int
	Required int
}
