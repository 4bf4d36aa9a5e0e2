package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bukvar/bukvar/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	ctx := context.Background()
	opts := LoadOptions{WorkingDir: tmpDir}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.Format != config.FormatDAST {
		t.Errorf("expected format %q, got %q", config.FormatDAST, result.Config.Format)
	}
	if result.LoadedFrom != "" {
		t.Errorf("expected no config file loaded, got %q", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
format: json
pretty: true
`
	configPath := filepath.Join(tmpDir, ".bukvar.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{WorkingDir: tmpDir}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format %q, got %q", config.FormatJSON, result.Config.Format)
	}
	if !result.Config.Pretty {
		t.Error("expected pretty true")
	}
	if result.LoadedFrom != configPath {
		t.Errorf("expected LoadedFrom %q, got %q", configPath, result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
format: json
validate: true
`
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	if err := os.WriteFile(customPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{
		WorkingDir:   tmpDir,
		ExplicitPath: customPath,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format %q, got %q", config.FormatJSON, result.Config.Format)
	}
	if !result.Config.Validate {
		t.Error("expected validate true")
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
format: dast
jobs: 2
`
	configPath := filepath.Join(tmpDir, ".bukvar.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	cliCfg := &config.Config{
		Format:   config.FormatJSON,
		Jobs:     8,
		Validate: true,
	}
	opts := LoadOptions{
		WorkingDir: tmpDir,
		CLIConfig:  cliCfg,
	}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format %q (CLI override), got %q", config.FormatJSON, result.Config.Format)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
	if !result.Config.Validate {
		t.Error("expected validate true (CLI override)")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
format: invalid-format
`
	configPath := filepath.Join(tmpDir, ".bukvar.yml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{WorkingDir: tmpDir}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected validation error for invalid format")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := LoadOptions{WorkingDir: t.TempDir()}

	_, err := Load(ctx, opts)
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestLoad_ExtensionsFromFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	configContent := `
extensions:
  - .md
  - .py
`
	configPath := filepath.Join(tmpDir, ".bukvar.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx := context.Background()
	opts := LoadOptions{WorkingDir: tmpDir}

	result, err := Load(ctx, opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Config.Extensions) != 2 {
		t.Errorf("expected 2 extensions, got %v", result.Config.Extensions)
	}
}
