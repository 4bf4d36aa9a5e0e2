package doccomment

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/span"
)

// rawLine is one line of a doc comment's stripped body, paired with the
// absolute byte offset (into the original source) of its first
// remaining character. Threading this through keeps every DocTag's span
// a true sub-span of its source position, the same discipline the block
// parser uses when dedenting blockquote/list-item prefixes.
type rawLine struct {
	text  string
	start int
}

// scanBlockComments finds every "/** ... */" block in content (shared by
// JSDoc and JavaDoc: the delimiter and inner-line stripping are
// identical, only the tag grammar downstream differs). A comment that
// opens with "/*" but not "/**" is an ordinary comment and is skipped.
func scanBlockComments(content []byte) []Comment {
	var out []Comment
	src := string(content)
	i := 0
	for {
		start := strings.Index(src[i:], "/**")
		if start < 0 {
			break
		}
		start += i
		// "/***" or "/**/" are not doc comments.
		bodyStart := start + 3
		if bodyStart < len(src) && (src[bodyStart] == '/' || src[bodyStart] == '*') {
			i = bodyStart + 1
			continue
		}
		end := strings.Index(src[bodyStart:], "*/")
		if end < 0 {
			break
		}
		end += bodyStart
		lines := stripCommentLines(src[bodyStart:end], bodyStart)
		out = append(out, Comment{Lines: lines, Span: span.Span{Start: start, End: end + 2}})
		i = end + 2
	}
	return out
}

// stripCommentLines removes, from each inner line of a "/** ... */"
// block, a leading run of whitespace followed by at most one "*" and at
// most one following space (spec.md §4.5: "strip a leading * and at
// most one space from each inner line"), tracking each surviving line's
// absolute source offset. Leading/trailing blank lines (the text
// immediately after "/**" and immediately before "*/" is typically
// empty) are trimmed.
func stripCommentLines(body string, bodyAbsStart int) []rawLine {
	rawLines := strings.Split(body, "\n")
	out := make([]rawLine, 0, len(rawLines))
	offset := bodyAbsStart
	for _, line := range rawLines {
		lineAbsStart := offset
		offset += len(line) + 1 // account for the '\n' split away

		trimmed := strings.TrimLeft(line, " \t")
		stripped := len(line) - len(trimmed)
		if strings.HasPrefix(trimmed, "*") {
			trimmed = trimmed[1:]
			stripped++
			if strings.HasPrefix(trimmed, " ") {
				trimmed = trimmed[1:]
				stripped++
			}
		}
		out = append(out, rawLine{text: trimmed, start: lineAbsStart + stripped})
	}

	for len(out) > 0 && strings.TrimSpace(out[0].text) == "" {
		out = out[1:]
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1].text) == "" {
		out = out[:len(out)-1]
	}
	return out
}
