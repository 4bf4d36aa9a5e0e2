package reporter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bukvar/bukvar/pkg/reporter"
	"github.com/bukvar/bukvar/pkg/runner"
	"github.com/bukvar/bukvar/pkg/span"
	"github.com/bukvar/bukvar/pkg/validator"
)

func newTestReporter(out, errOut *bytes.Buffer, verbose bool) *reporter.Reporter {
	return reporter.New(reporter.Options{
		Writer:      out,
		ErrorWriter: errOut,
		Color:       "never",
		Verbose:     verbose,
	})
}

func TestReportFile_NotVerbose_NoOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, false)

	r.ReportFile(runner.FileOutcome{Path: "test.md"})

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestReportFile_Verbose_CleanFile(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, true)

	r.ReportFile(runner.FileOutcome{Path: "test.md"})

	assert.Contains(t, out.String(), "test.md")
	assert.Empty(t, errOut.String())
}

func TestReportFile_Verbose_WithDiagnostics(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, true)

	r.ReportFile(runner.FileOutcome{
		Path: "test.md",
		Diagnostics: []validator.Diagnostic{
			{Severity: validator.SeverityError, Span: span.Span{Start: 1, End: 5}, Message: "broken link"},
		},
	})

	assert.Contains(t, out.String(), "(1 issues)")
	assert.Contains(t, out.String(), "error")
	assert.Contains(t, out.String(), "broken link")
}

func TestReportFile_Verbose_WithError(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, true)

	r.ReportFile(runner.FileOutcome{Path: "test.md", Error: errors.New("permission denied")})

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "test.md")
	assert.Contains(t, errOut.String(), "permission denied")
}

func TestSummary_Ok(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, false)

	result := &runner.Result{
		Stats: runner.Stats{
			FilesProcessed:        3,
			DiagnosticsBySeverity: map[string]int{},
		},
	}

	r.Summary(result)

	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "3 files processed")
}

func TestSummary_Failed(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, false)

	result := &runner.Result{
		Stats: runner.Stats{
			FilesProcessed: 2,
			FilesErrored:   1,
			DiagnosticsBySeverity: map[string]int{
				string(validator.SeverityError): 1,
			},
		},
	}

	r.Summary(result)

	assert.Contains(t, out.String(), "failed")
}

func TestSummary_NilResult(t *testing.T) {
	var out, errOut bytes.Buffer
	r := newTestReporter(&out, &errOut, false)

	r.Summary(nil)

	assert.Empty(t, out.String())
}
