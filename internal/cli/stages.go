package cli

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
	"github.com/NikitaCOEUR/pipecomplete/internal/status"
)

// StagesParams contains parameters for the Stages command
type StagesParams struct {
	Prefix       string
	Fuzzy        bool // match Prefix anywhere in the name, best match first
	Format       string
	LogLevel     string
	ConfigPath   string
	RegistryPath string
}

// Stages lists the stage kinds of the catalog in use
func Stages(params StagesParams) error {
	cfg, log, err := loadConfig(params.ConfigPath, params.RegistryPath, params.LogLevel)
	if err != nil {
		return err
	}

	snap, err := loadSnapshot(cfg.Registry)
	if err != nil {
		return fmt.Errorf("failed to load stage catalog: %w", err)
	}
	var kinds []registry.StageKind
	if params.Fuzzy {
		kinds = snap.Search(params.Prefix)
	} else {
		kinds = snap.WithPrefix(params.Prefix)
	}

	log.Debug().
		Str("registry", cfg.Registry).
		Str("prefix", params.Prefix).
		Bool("fuzzy", params.Fuzzy).
		Int("stages", len(kinds)).
		Msg("Listing stages")

	switch params.Format {
	case "", FormatPretty:
		fmt.Println(status.RenderCatalog(kinds))
	case FormatText:
		for _, kind := range kinds {
			if kind.Description == "" {
				fmt.Println(kind.Name)
				continue
			}
			fmt.Printf("%s\t%s\n", kind.Name, kind.Description)
		}
	case FormatYAML, FormatJSON:
		data, err := registry.EncodeCatalog(kinds, params.Format)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSuffix(string(data), "\n"))
	default:
		return fmt.Errorf("unsupported output format: %s", params.Format)
	}
	return nil
}
