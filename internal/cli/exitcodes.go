package cli

import "github.com/bukvar/bukvar/pkg/runner"

// Exit codes for bukvar (spec.md §6).
const (
	// ExitSuccess indicates every file was parsed and written successfully.
	ExitSuccess = 0

	// ExitParseFailure indicates at least one file failed to parse, encode,
	// or write.
	ExitParseFailure = 1

	// ExitInvalidArgs indicates invalid command-line usage.
	ExitInvalidArgs = 2

	// ExitIOError indicates an I/O error on the output directory (or any
	// other failure in the driver itself, outside of per-file processing).
	ExitIOError = 3
)

// ExitCodeFromResult determines the exit code for a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.Stats.FilesErrored > 0 {
		return ExitParseFailure
	}
	return ExitSuccess
}
