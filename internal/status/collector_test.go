package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/pipecomplete/internal/config"
	"github.com/NikitaCOEUR/pipecomplete/internal/registry"
)

func TestCollectAll_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	data := CollectAll("", "")

	assert.Equal(t, config.OriginDefaults, data.ConfigOrigin)
	assert.Empty(t, data.ConfigPath)
	assert.Empty(t, data.ConfigError)
	assert.Equal(t, "warn", data.LogLevel)
	assert.Empty(t, data.TemplateOverrides)

	require.NotNil(t, data.Registry)
	assert.Equal(t, "embedded", data.Registry.Source)
	assert.Equal(t, int64(len(registry.DefaultCatalog())), data.Registry.Size)
	assert.Empty(t, data.Registry.Error)
	assert.NotEmpty(t, data.Registry.Stages)
}

func TestCollectAll_ConfigAndCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "stages.yml")
	require.NoError(t, os.WriteFile(catalog, []byte(`
stages:
  - name: jdbc
    role: sink
    options:
      - name: table-name
        required: true
      - name: url
`), 0644))

	configPath := filepath.Join(dir, "pipecomplete.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
log_level: debug
registry: stages.yml
templates:
  stage: "{{ .Kind.Name }}"
  pipe: "next"
`), 0644))

	data := CollectAll(configPath, "")

	assert.Equal(t, configPath, data.ConfigPath)
	assert.Equal(t, config.OriginFile, data.ConfigOrigin)
	assert.Equal(t, "debug", data.LogLevel)
	assert.Equal(t, []string{"pipe", "stage"}, data.TemplateOverrides)

	require.NotNil(t, data.Registry)
	assert.Equal(t, catalog, data.Registry.Source)
	assert.Positive(t, data.Registry.Size)
	assert.Equal(t, []StageSummary{{Name: "jdbc", Role: "sink", Options: 2, Required: 1}}, data.Registry.Stages)
}

func TestCollectAll_RegistryOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "missing.yml")

	data := CollectAll("", missing)

	require.NotNil(t, data.Registry)
	assert.Equal(t, missing, data.Registry.Source)
	assert.Contains(t, data.Registry.Error, "failed to read catalog")
	assert.Empty(t, data.Registry.Stages)
}

func TestCollectAll_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "pipecomplete.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: loud"), 0644))

	data := CollectAll(configPath, "")

	assert.Equal(t, configPath, data.ConfigPath)
	assert.Contains(t, data.ConfigError, "unknown log level")
	assert.Equal(t, "warn", data.LogLevel, "defaults are reported when the file is invalid")
	assert.Equal(t, "embedded", data.Registry.Source)
}

func TestCollectAll_DuplicateStages(t *testing.T) {
	catalog := filepath.Join(t.TempDir(), "stages.json")
	require.NoError(t, os.WriteFile(catalog, []byte(`{"stages": [{"name": "a"}, {"name": "a"}]}`), 0644))
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	data := CollectAll("", catalog)
	assert.Contains(t, data.Registry.Error, "more than once")
}
