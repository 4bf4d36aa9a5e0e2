package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bukvar/bukvar/pkg/validator"
)

// diagnosticIndent is the column at which a wrapped message's
// continuation lines are re-indented, keeping them under the message
// column rather than back at the left margin.
const diagnosticIndent = "      "

// FormatDiagnostic formats a single validator Diagnostic for terminal
// output: path:[start:end]  severity  message. width is the terminal
// column width (see TerminalWidth) the message is wrapped to, so a long
// diagnostic doesn't run off the edge of a narrow terminal.
func (s *Styles) FormatDiagnostic(path string, diag *validator.Diagnostic, width int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:[%d:%d]",
		s.FilePath.Render(path),
		diag.Span.Start,
		diag.Span.End,
	)

	severity := s.FormatSeverity(diag.Severity)

	message := diag.Message
	if wrapWidth := width - len(diagnosticIndent); wrapWidth > 0 {
		message = lipgloss.NewStyle().Width(wrapWidth).Render(message)
	}
	lines := strings.Split(message, "\n")

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		severity,
		s.Message.Render(lines[0]),
	))
	for _, line := range lines[1:] {
		builder.WriteString(diagnosticIndent + s.Message.Render(line) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev validator.Severity) string {
	switch sev {
	case validator.SeverityError:
		return s.Error.Render("error")
	case validator.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
