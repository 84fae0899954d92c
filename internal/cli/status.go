package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/pipecomplete/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath   string
	RegistryPath string
}

// Status displays the effective configuration and stage catalog
func Status(params StatusParams) error {
	data := status.CollectAll(params.ConfigPath, params.RegistryPath)

	// Render and display
	output := status.Render(data)
	fmt.Println(output)

	return nil
}
