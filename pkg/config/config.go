// Package config defines core configuration types for bukvar. These
// types are pure data structures with no dependency on how they get
// populated (flags, env, file) — internal/cli and internal/configloader
// own that wiring.
package config

// OutputFormat selects how a parsed document is serialized (spec.md §6).
type OutputFormat string

const (
	FormatDAST OutputFormat = "dast"
	FormatJSON OutputFormat = "json"
)

// IsValid reports whether f is one of the recognized output formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatDAST, FormatJSON:
		return true
	default:
		return false
	}
}

// DefaultExtensions is the recognized input extension set (spec.md §6):
// GFM markdown plus JSDoc/JavaDoc/PyDoc source extensions.
var DefaultExtensions = []string{".md", ".markdown", ".js", ".ts", ".tsx", ".java", ".py", ".pyi"}

// Config is the root configuration for a bukvar run, built from CLI
// flags (internal/cli) and optionally overlaid from a config file
// (internal/configloader).
type Config struct {
	// Extensions overrides the auto-detected input extension set
	// ("-e, --extensions").
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Format selects dast or json output ("-f, --format").
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Pretty indents textual/JSON output instead of the compact form.
	Pretty bool `mapstructure:"pretty" yaml:"pretty"`

	// Validate runs the Validator and includes its diagnostics in output.
	Validate bool `mapstructure:"validate" yaml:"validate"`

	// Sourcemap includes per-node span info in output.
	Sourcemap bool `mapstructure:"sourcemap" yaml:"sourcemap"`

	// Streaming reads input through a chunked reader instead of loading
	// the whole file up front.
	Streaming bool `mapstructure:"streaming" yaml:"streaming"`

	// CLI-level options (not persisted to config files).

	// Verbose prints per-file progress to stderr.
	Verbose bool `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers (0 = runtime.NumCPU()).
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Extensions: append([]string(nil), DefaultExtensions...),
		Format:     FormatDAST,
		Jobs:       0,
	}
}
