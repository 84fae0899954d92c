package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	isolate(t)
	catalog := writeFile(t, "stages.yml", testCatalog)

	output, err := captureStdout(t, func() error {
		return Status(StatusParams{RegistryPath: catalog})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration:")
	assert.Contains(t, output, "using defaults")
	assert.Contains(t, output, catalog)
	assert.Contains(t, output, "foobar")
}
