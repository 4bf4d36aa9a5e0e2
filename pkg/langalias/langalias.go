// Package langalias canonicalizes fenced-code-block language tags. A
// fence's info string preserves whatever the author typed ("js", "TS",
// "py3"); this package derives a stable canonical name from it so the
// textual/binary encoders and downstream tooling can group code blocks by
// language regardless of which alias was used. Grounded on the teacher's
// langdetect.normalize, generalized from classifier-driven detection (not
// needed here — fences already declare a language) to pure alias lookup
// via go-enry's canonical-name table.
package langalias

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// commonAliases covers shorthand that authors type in fences but that
// enry's own alias table does not normalize on its own (it maps by file
// extension / canonical name, not by these terse abbreviations).
var commonAliases = map[string]string{
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"py":   "python",
	"py3":  "python",
	"rb":   "ruby",
	"sh":   "bash",
	"shell": "bash",
	"zsh":  "bash",
	"yml":  "yaml",
	"md":   "markdown",
	"cpp":  "c++",
	"cxx":  "c++",
	"cs":   "c#",
	"golang": "go",
	"kt":   "kotlin",
	"rs":   "rust",
	"dockerfile": "dockerfile",
}

// Canonical returns the canonical language name for a fence info-string
// language tag. It never errors: unrecognized tags are returned
// lowercased unchanged, since the info string is always preserved
// verbatim alongside the canonical form (spec.md §3 attribute model).
func Canonical(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if canon, ok := commonAliases[tag]; ok {
		return canon
	}
	if name, ok := enry.GetLanguageByAlias(tag); ok {
		return strings.ToLower(name)
	}
	return tag
}
