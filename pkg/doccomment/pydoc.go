package doccomment

import (
	"regexp"
	"strings"

	"github.com/bukvar/bukvar/pkg/span"
)

// scanDocstrings finds every triple-quoted string immediately following
// a "def", "class", or module header (spec.md §4.5). A module docstring
// is the first statement in the file; function/class docstrings are the
// first statement inside their body, so in practice any triple-quoted
// string whose opening line is not itself inside another string is a
// candidate — good enough for extraction purposes without a full Python
// grammar.
func scanDocstrings(content []byte) []Comment {
	var out []Comment
	src := string(content)
	i := 0
	for {
		start := strings.Index(src[i:], `"""`)
		if start < 0 {
			break
		}
		start += i
		bodyStart := start + 3
		end := strings.Index(src[bodyStart:], `"""`)
		if end < 0 {
			break
		}
		end += bodyStart
		out = append(out, Comment{Lines: docstringLines(src[bodyStart:end], bodyStart), Span: span.Span{Start: start, End: end + 3}})
		i = end + 3
	}
	return out
}

// docstringLines splits a docstring's inner text into lines paired with
// their absolute source offset. Unlike JSDoc there is no per-line
// delimiter to strip; common leading indentation (PEP 257) is removed
// so section-header regexes match regardless of the enclosing code's
// indent level.
func docstringLines(body string, bodyAbsStart int) []rawLine {
	split := strings.Split(body, "\n")
	indent := -1
	for _, l := range split[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		indent = 0
	}

	out := make([]rawLine, 0, len(split))
	offset := bodyAbsStart
	for idx, l := range split {
		lineAbsStart := offset
		offset += len(l) + 1
		trimmed := l
		strip := 0
		if idx > 0 {
			strip = minInt(indent, len(l)-len(strings.TrimLeft(l, " \t")))
			if strip > 0 {
				trimmed = l[strip:]
			}
		} else {
			before := len(trimmed)
			trimmed = strings.TrimLeft(trimmed, " \t")
			strip = before - len(trimmed)
		}
		out = append(out, rawLine{text: trimmed, start: lineAbsStart + strip})
	}

	for len(out) > 0 && strings.TrimSpace(out[0].text) == "" {
		out = out[1:]
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1].text) == "" {
		out = out[:len(out)-1]
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var (
	googleSectionRe = regexp.MustCompile(`(?m)^(Args|Arguments|Returns|Raises|Yields|Attributes|Examples|Note):\s*$`)
	numpySectionRe  = regexp.MustCompile(`(?m)^(Parameters|Returns|Raises|Yields|Attributes|Examples|Notes)\s*\n\s*-{3,}\s*$`)
	sphinxFieldRe   = regexp.MustCompile(`(?m)^\s*:(param|type|returns|return|rtype|raises|raise)\b`)
)

// detectPyStyle scans a docstring's body to classify it as Google,
// NumPy, or Sphinx (spec.md §4.5). An undecided body (a plain one-line
// summary with no recognized section markers) is treated as Google,
// the most permissive of the three since its section-header grammar is
// the only one splitDescriptionAndTagsPy actually needs to match.
func detectPyStyle(body string) string {
	switch {
	case sphinxFieldRe.MatchString(body):
		return "sphinx"
	case numpySectionRe.MatchString(body):
		return "numpy"
	default:
		return "google"
	}
}
