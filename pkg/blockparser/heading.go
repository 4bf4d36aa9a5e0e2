package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// tryThematicBreak recognizes a line of 3+ '*', '-', or '_' characters
// (optionally space-separated, up to 3 leading spaces of indent) as a
// ThematicBreak. The driver loop tries it before trySetext, so a "---"
// line directly under a paragraph becomes a ThematicBreak rather than a
// setext underline; only "=" underlines and "-"/"--" promote a paragraph.
func tryThematicBreak(lines []Line) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	indent := leadingSpaces(l.Raw)
	if indent > 3 {
		return nil, 0
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if trimmed == "" {
		return nil, 0
	}
	marker := trimmed[0]
	if marker != '*' && marker != '-' && marker != '_' {
		return nil, 0
	}
	count := 0
	for _, c := range trimmed {
		switch {
		case c == rune(marker):
			count++
		case c == ' ' || c == '\t':
			continue
		default:
			return nil, 0
		}
	}
	if count < 3 {
		return nil, 0
	}
	n := dast.New(dast.NodeThematicBreak)
	n.Span = l.Span()
	return n, 1
}

// tryHeadingATX recognizes "#"×1-6 heading lines, with an optional
// trailing "{#explicit-id}" attribute and optional trailing run of '#'
// (closing sequence) stripped before the text is kept for inline parsing.
func tryHeadingATX(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	indent := leadingSpaces(l.Raw)
	if indent > 3 {
		return nil, 0
	}
	raw := strings.TrimLeft(string(l.Raw), " \t")
	level := 0
	for level < len(raw) && raw[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return nil, 0
	}
	rest := raw[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, 0 // "#foo" is not a heading
	}
	text := strings.Trim(rest, " \t")

	// Strip an optional closing run of '#' characters (possibly preceded
	// by trailing space), e.g. "## Title ##".
	text = strings.TrimRight(text, " \t")
	trimmedClose := strings.TrimRight(text, "#")
	if trimmedClose != text {
		if trimmedClose == "" || trimmedClose[len(trimmedClose)-1] == ' ' || trimmedClose[len(trimmedClose)-1] == '\t' {
			text = strings.TrimRight(trimmedClose, " \t")
		}
	}

	explicitID := ""
	if idx := strings.LastIndex(text, "{#"); idx >= 0 && strings.HasSuffix(text, "}") {
		candidate := text[idx+2 : len(text)-1]
		if isValidID(candidate) {
			explicitID = candidate
			text = strings.TrimRight(text[:idx], " \t")
		}
	}

	n := dast.New(dast.NodeHeading)
	n.Span = l.Span()
	n.SetInt(dast.AttrHeadingLevel, int64(level))
	id := explicitID
	if id == "" {
		id = slugify(text)
	}
	n.SetString(dast.AttrHeadingID, disambiguateID(st, id))
	n.SetString(dast.AttrTextContent, text)
	st.addLeaf(n)
	return n, 1
}

func isValidID(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '}' || c == '{' {
			return false
		}
	}
	return true
}

// slugify derives a GFM-style auto id from heading text: lowercase,
// strip punctuation, collapse whitespace to hyphens.
func slugify(text string) string {
	var b strings.Builder
	lastDash := true
	for _, c := range strings.ToLower(text) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
			lastDash = false
		case c == ' ' || c == '\t' || c == '-' || c == '_':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			// drop punctuation/unicode entirely, matching GitHub's slugger
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		s = "section"
	}
	return s
}

// disambiguateID appends "-2", "-3", ... to duplicate heading ids, the
// same scheme GitHub's own slugger uses.
func disambiguateID(st *state, id string) string {
	n := st.seenHeadingIDs[id]
	st.seenHeadingIDs[id] = n + 1
	if n == 0 {
		return id
	}
	return id + "-" + itoa(n+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// trySetext checks whether the current line is a setext underline
// ("===" or "---...", at most 3 leading spaces) immediately following an
// open, single-block paragraph, and if so promotes that paragraph in
// place to a Heading. Returns true if the line was consumed this way.
func trySetext(st *state, out []*dast.Node, line Line) bool {
	if len(out) == 0 {
		return false
	}
	last := out[len(out)-1]
	if last.Kind != dast.NodeParagraph {
		return false
	}
	indent := leadingSpaces(line.Raw)
	if indent > 3 {
		return false
	}
	trimmed := strings.TrimLeft(string(line.Raw), " \t")
	trimmed = strings.TrimRight(trimmed, " \t")
	if trimmed == "" {
		return false
	}
	var level int64
	switch trimmed[0] {
	case '=':
		level = 1
	case '-':
		level = 2
	default:
		return false
	}
	for _, c := range trimmed {
		if byte(c) != trimmed[0] {
			return false
		}
	}
	last.Kind = dast.NodeHeading
	last.Span = span2(last.Span.Start, line.End)
	last.SetInt(dast.AttrHeadingLevel, level)
	last.SetString(dast.AttrHeadingID, disambiguateID(st, slugify(last.Str(dast.AttrTextContent))))
	return true
}
