package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukvar/bukvar/internal/cli"
)

func TestIntegration_ParsesMarkdownToDAST(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "readme.md"), []byte("# Hello\n\nSome text.\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{inDir, outDir})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	outPath := filepath.Join(outDir, "readme.dast")
	data, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Equal(t, "DAST", string(data[:4]))
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "readme.md"), []byte("# Hello\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--format", "json", "--pretty", inDir, outDir})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	outPath := filepath.Join(outDir, "readme.json")
	data, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "\"kind\"")
}

func TestIntegration_DefaultsOutputToInputDir(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "readme.md"), []byte("# Hello\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{inDir})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	_, readErr := os.ReadFile(filepath.Join(inDir, "readme.dast"))
	require.NoError(t, readErr)
}

func TestIntegration_ValidateFlagDoesNotAffectExitCode(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := t.TempDir()
	// Unresolved link reference, but this is a validation diagnostic, not a
	// parse failure — it must not affect the exit code.
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "broken.md"), []byte("[broken][nope]\n"), 0644))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"--validate", "--verbose", inDir, outDir})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	assert.NoError(t, err)
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromError(err))
}

func TestIntegration_NonexistentInputDir(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "does-not-exist")})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	assert.Error(t, err)
}
