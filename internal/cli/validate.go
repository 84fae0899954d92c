package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/pipecomplete/internal/config"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

// embeddedCatalogName is how the built-in catalog is reported and decoded
const embeddedCatalogName = "default.yml"

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	// Path of the catalog to check; empty means the configured catalog,
	// falling back to the embedded one
	Path       string
	ConfigPath string
}

// Validate validates a stage catalog file
func Validate(params ValidateParams) error {
	catalogPath := params.Path
	if catalogPath == "" {
		cfg, err := config.Load(params.ConfigPath)
		if err != nil {
			return err
		}
		catalogPath = cfg.Registry
	}

	var (
		name    = catalogPath
		content []byte
	)
	if catalogPath == "" {
		name = embeddedCatalogName
		content = registry.DefaultCatalog()
		fmt.Println("Validating: embedded catalog")
	} else {
		var err error
		content, err = os.ReadFile(catalogPath)
		if err != nil {
			return fmt.Errorf("failed to read catalog file: %w", err)
		}
		fmt.Printf("Validating: %s\n", catalogPath)
	}
	fmt.Println()

	result, err := registry.ValidateCatalog(name, content)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Printf("✅ Catalog is valid! (%d stages)\n", result.Stages)
		return nil
	}

	// Display errors
	fmt.Println("❌ Catalog has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	// Return non-zero exit code
	return fmt.Errorf("validation failed")
}
