package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidCatalog(t *testing.T) {
	catalog := writeFile(t, "stages.yml", testCatalog)

	output, err := captureStdout(t, func() error {
		return Validate(ValidateParams{Path: catalog})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Validating: "+catalog)
	assert.Contains(t, output, "Catalog is valid! (3 stages)")
}

func TestValidate_SchemaErrors(t *testing.T) {
	catalog := writeFile(t, "stages.yml", `
stages:
  - name: foo
    role: gateway
`)

	output, err := captureStdout(t, func() error {
		return Validate(ValidateParams{Path: catalog})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, output, "Catalog has errors:")
	assert.Contains(t, output, "Found 1 error(s)")
}

func TestValidate_SemanticErrors(t *testing.T) {
	catalog := writeFile(t, "stages.json", `{"stages": [{"name": "a"}, {"name": "a"}]}`)

	output, err := captureStdout(t, func() error {
		return Validate(ValidateParams{Path: catalog})
	})
	require.Error(t, err)
	assert.Contains(t, output, "[stages/a]")
}

func TestValidate_EmbeddedCatalog(t *testing.T) {
	isolate(t)

	output, err := captureStdout(t, func() error {
		return Validate(ValidateParams{})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Validating: embedded catalog")
	assert.Contains(t, output, "Catalog is valid!")
}

func TestValidate_ConfiguredCatalog(t *testing.T) {
	catalog := writeFile(t, "stages.yml", testCatalog)
	configPath := writeFile(t, "pipecomplete.yml", "registry: "+catalog+"\n")

	output, err := captureStdout(t, func() error {
		return Validate(ValidateParams{ConfigPath: configPath})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Validating: "+catalog)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := captureStdout(t, func() error {
		return Validate(ValidateParams{Path: "/nonexistent/stages.yml"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}
