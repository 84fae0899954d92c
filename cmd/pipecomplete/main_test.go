package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the app with args and returns captured stdout
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	runErr := newApp(strings.NewReader(stdin)).Run(context.Background(), append([]string{"pipecomplete"}, args...))

	_ = w.Close()
	os.Stdout = oldStdout
	return <-done, runErr
}

func TestMain_CompleteStageNames(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	output, err := run(t, "", "complete", "fi")
	require.NoError(t, err)
	assert.Equal(t, "file\nfilter\n", output)
}

func TestMain_CompleteAfterDoubleDash(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	output, err := run(t, "", "complete", "--", "jdbc --table")
	require.NoError(t, err)
	assert.Equal(t, "jdbc --table-name=\tTarget table\n", output)
}

func TestMain_CompleteFromStdin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	output, err := run(t, "log --level=W\n", "complete", "--stdin")
	require.NoError(t, err)
	assert.Equal(t, "log --level=WARN\tLevel used to log messages\n", output)
}

func TestMain_CompleteJSONWithDetail(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	output, err := run(t, "", "complete", "--detail", "3", "--format", "json", "--", "jdbc --table-name=x ")
	require.NoError(t, err)
	assert.Contains(t, output, `"text": "jdbc --table-name=x | "`)
	assert.Contains(t, output, `"explanation": "continue pipeline after jdbc"`)
}

func TestMain_GlobalRegistryFlag(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	catalog := filepath.Join(t.TempDir(), "stages.yml")
	require.NoError(t, os.WriteFile(catalog, []byte("stages:\n  - name: only\n"), 0644))

	output, err := run(t, "", "--registry", catalog, "complete", "")
	require.NoError(t, err)
	assert.Equal(t, "only\n", output)
}

func TestMain_RegistryFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	catalog := filepath.Join(t.TempDir(), "stages.yml")
	require.NoError(t, os.WriteFile(catalog, []byte("stages:\n  - name: envstage\n"), 0644))
	t.Setenv("PIPECOMPLETE_REGISTRY", catalog)

	output, err := run(t, "", "stages", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "envstage\n", output)
}

func TestMain_Validate(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	output, err := run(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, output, "Catalog is valid!")
}

func TestMain_Schema(t *testing.T) {
	output, err := run(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, output, `"$schema"`)
}

func TestMain_Status(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	output, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Stage catalog:")
	assert.Contains(t, output, "embedded")
}
