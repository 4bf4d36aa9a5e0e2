package blockparser

import "strings"

// foldLabel collapses internal whitespace runs to a single space, trims
// the ends, and lowercases, so "[Foo  Bar]" and "[foo bar]" address the
// same link/footnote definition.
func foldLabel(label string) string {
	fields := strings.Fields(label)
	return strings.ToLower(strings.Join(fields, " "))
}
