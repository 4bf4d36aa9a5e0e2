package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bukvar/bukvar/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies Extensions slice", func(t *testing.T) {
		original := &config.Config{Extensions: []string{".md", ".py"}}
		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.Extensions, clone.Extensions)
		clone.Extensions[0] = "changed"
		assert.Equal(t, ".md", original.Extensions[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Extensions: []string{".md"},
			Format:     config.FormatJSON,
			Pretty:     true,
			Validate:   true,
			Sourcemap:  true,
			Streaming:  true,
			Verbose:    true,
			Jobs:       4,
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original.Format, clone.Format)
		assert.Equal(t, original.Pretty, clone.Pretty)
		assert.Equal(t, original.Validate, clone.Validate)
		assert.Equal(t, original.Sourcemap, clone.Sourcemap)
		assert.Equal(t, original.Streaming, clone.Streaming)
		assert.Equal(t, original.Verbose, clone.Verbose)
		assert.Equal(t, original.Jobs, clone.Jobs)
		assert.Equal(t, original.Extensions, clone.Extensions)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			Format:   config.FormatJSON,
			Validate: true,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "format: json")
		assert.Contains(t, string(data), "validate: true")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
format: json
pretty: true
extensions:
  - .md
  - .py
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, config.FormatJSON, cfg.Format)
		assert.True(t, cfg.Pretty)
		assert.Equal(t, []string{".md", ".py"}, cfg.Extensions)
	})
}

func TestDefaultExtensions(t *testing.T) {
	cfg := config.NewConfig()
	assert.Equal(t, config.DefaultExtensions, cfg.Extensions)
	assert.Equal(t, config.FormatDAST, cfg.Format)
}

func TestOutputFormatIsValid(t *testing.T) {
	assert.True(t, config.FormatDAST.IsValid())
	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}
