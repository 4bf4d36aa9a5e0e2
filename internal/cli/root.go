// Package cli provides the Cobra command structure for bukvar.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bukvar/bukvar/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bukvar command: parsing and encoding
// GFM markdown (and JSDoc/JavaDoc/PyDoc source) into DAST or JSON, plus a
// version subcommand.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bukvar [options] <input_dir> [output_dir]",
		Short: "Parse GFM Markdown and doc comments into a portable document tree",
		Long: `bukvar parses GitHub Flavored Markdown and JSDoc/JavaDoc/PyDoc doc comments
into a language-independent document abstract syntax tree (DAST), and
writes one output file per input under output_dir, mirroring the input
directory structure.`,
		Args: cobra.RangeArgs(1, 2),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addRunFlags(rootCmd, &configPath)

	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
