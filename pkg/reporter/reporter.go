// Package reporter prints per-file progress and an end-of-run summary to
// the terminal (spec.md §6's "--verbose" flag). It has no concept of a
// rule registry or fix engine to group findings by — a run produces one
// validator.Diagnostic slice per file, and that is what gets rendered.
package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/bukvar/bukvar/internal/ui/pretty"
	"github.com/bukvar/bukvar/pkg/runner"
)

// Options configures a Reporter.
type Options struct {
	// Writer is the destination for progress and summary output
	// (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Color controls colorized output. Values: "auto" (default), "always", "never".
	Color string

	// Verbose enables per-file progress lines as each file completes.
	Verbose bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Color:       "auto",
	}
}

// Reporter prints Runner progress and summaries.
type Reporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
}

// New creates a Reporter for the given options.
func New(opts Options) *Reporter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &Reporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.TerminalWidth(opts.Writer),
	}
}

// ReportFile prints one file's outcome. It is a no-op unless Verbose is set.
func (r *Reporter) ReportFile(outcome runner.FileOutcome) {
	if !r.opts.Verbose {
		return
	}

	if outcome.Error != nil {
		fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
			r.styles.FilePath.Render(outcome.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
		)
		return
	}

	fmt.Fprintln(r.opts.Writer, r.styles.FormatFileHeader(outcome.Path, len(outcome.Diagnostics)))
	for i := range outcome.Diagnostics {
		fmt.Fprint(r.opts.Writer, r.styles.FormatDiagnostic(outcome.Path, &outcome.Diagnostics[i], r.width))
	}
}

// Summary writes the end-of-run summary line (always printed, regardless
// of Verbose).
func (r *Reporter) Summary(result *runner.Result) {
	if result == nil {
		return
	}

	status := r.styles.Success.Render("ok")
	if result.HasFailures() {
		status = r.styles.Failure.Render("failed")
	}

	fmt.Fprintf(r.opts.Writer, "%s: %d files processed, %d errored, %d diagnostics (%d files with issues)\n",
		status,
		result.Stats.FilesProcessed,
		result.Stats.FilesErrored,
		result.Stats.DiagnosticsTotal,
		result.Stats.FilesWithIssues,
	)
}
