package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bukvar/bukvar/internal/configloader"
	"github.com/bukvar/bukvar/internal/logging"
	"github.com/bukvar/bukvar/pkg/config"
	"github.com/bukvar/bukvar/pkg/reporter"
	"github.com/bukvar/bukvar/pkg/runner"
)

// ErrFilesFailed is returned when one or more files could not be
// processed, signalling exit code ExitParseFailure.
var ErrFilesFailed = errors.New("one or more files failed to process")

// errInvalidArgs and errIOFailure are sentinels ExitCodeFromError
// recognizes to pick an exit code distinct from ErrFilesFailed.
var (
	errInvalidArgs = errors.New("invalid arguments")
	errIOFailure   = errors.New("io failure")
)

type runFlags struct {
	format     string
	extensions []string
	pretty     bool
	validate   bool
	sourcemap  bool
	streaming  bool
	verbose    bool
	jobs       int
}

// addRunFlags wires the run flags (spec.md §6) onto the root command and
// installs its RunE. configPath points at the root command's --config
// persistent flag value, filled in by the time RunE runs.
func addRunFlags(cmd *cobra.Command, configPath *string) {
	flags := &runFlags{}

	cmd.Flags().StringVarP(&flags.format, "format", "f", string(config.FormatDAST),
		"output format: dast, json")
	cmd.Flags().StringSliceVarP(&flags.extensions, "extensions", "e", nil,
		"comma-separated extensions to process, overriding the auto-detected set")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "indent textual/JSON output")
	cmd.Flags().BoolVar(&flags.validate, "validate", false, "run the validator and include diagnostics in output")
	cmd.Flags().BoolVar(&flags.sourcemap, "sourcemap", false, "include per-node span info in output")
	cmd.Flags().BoolVar(&flags.streaming, "streaming", false, "read input through a chunked reader")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "print per-file progress to stderr")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runRoot(cmd, args, *configPath, flags)
	}
}

func runRoot(cmd *cobra.Command, args []string, configPath string, flags *runFlags) error {
	logger := logging.Default()

	inputDir := args[0]
	outputDir := inputDir
	if len(args) > 1 {
		outputDir = args[1]
	}

	cliCfg := &config.Config{
		Format:    config.OutputFormat(flags.format),
		Pretty:    flags.pretty,
		Validate:  flags.validate,
		Sourcemap: flags.sourcemap,
		Streaming: flags.streaming,
		Verbose:   flags.verbose,
		Jobs:      flags.jobs,
	}
	if cmd.Flags().Changed("extensions") {
		cliCfg.Extensions = flags.extensions
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   inputDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	finalCfg := loadResult.Config

	if finalCfg.Verbose {
		logging.SetLevel("info")
	}
	for _, w := range loadResult.Warnings {
		logger.Warn(w)
	}
	if loadResult.LoadedFrom != "" {
		logger.Debug("loaded configuration from", "file", loadResult.LoadedFrom)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep := reporter.New(reporter.Options{
		Writer:      cmd.ErrOrStderr(),
		ErrorWriter: cmd.ErrOrStderr(),
		Color:       colorMode,
		Verbose:     finalCfg.Verbose,
	})

	runOpts := runner.Options{
		Paths:      []string{inputDir},
		WorkingDir: inputDir,
		OutputDir:  outputDir,
		Extensions: runner.DefaultExtensions(),
		Jobs:       finalCfg.Jobs,
		Config:     finalCfg,
	}
	if len(finalCfg.Extensions) > 0 {
		runOpts.Extensions = finalCfg.Extensions
	}

	logger.Debug("starting run",
		logging.FieldInput, inputDir,
		logging.FieldOutput, outputDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	r := runner.New()
	result, err := r.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("%w: %v", errIOFailure, err)
	}

	for _, outcome := range result.Files {
		rep.ReportFile(outcome)
	}
	rep.Summary(result)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// ExitCodeFromError maps a RunE error to one of the exit codes in
// exitcodes.go. It returns ExitParseFailure for ErrFilesFailed,
// ExitIOError for errIOFailure, ExitInvalidArgs for errInvalidArgs and any
// other error (including cobra's own usage errors), and ExitSuccess for
// nil.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitParseFailure
	case errors.Is(err, errInvalidArgs):
		return ExitInvalidArgs
	case errors.Is(err, errIOFailure):
		return ExitIOError
	default:
		return ExitInvalidArgs
	}
}
