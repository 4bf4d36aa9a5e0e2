package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

var alertKinds = map[string]bool{
	"NOTE": true, "TIP": true, "IMPORTANT": true, "WARNING": true, "CAUTION": true,
}

// tryBlockquote consumes a run of consecutive lines that either start
// with a ">" marker or are lazy continuations of an already-open
// blockquote paragraph, strips the marker, and recursively block-parses
// the dedented content. A "[!KIND]" token as the first line's sole
// content promotes the BlockQuote to an alert.
func tryBlockquote(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) == 0 || !isQuoteMarker(lines[0]) {
		return nil, 0
	}
	var inner []Line
	i := 0
	for i < len(lines) {
		if isQuoteMarker(lines[i]) {
			inner = append(inner, stripQuoteMarker(lines[i]))
			i++
			continue
		}
		if lines[i].IsBlank() {
			break
		}
		// Lazy continuation: a non-blank, non-quoted line immediately
		// following a quoted line extends the blockquote paragraph.
		if i > 0 {
			inner = append(inner, lines[i])
			i++
			continue
		}
		break
	}

	n := dast.New(dast.NodeBlockQuote)
	n.Span = joinedSpan(lines[:i])

	if len(inner) > 0 {
		first := strings.TrimSpace(string(inner[0].Raw))
		if strings.HasPrefix(first, "[!") && strings.HasSuffix(first, "]") {
			kind := strings.ToUpper(first[2 : len(first)-1])
			if alertKinds[kind] {
				n.SetString(dast.AttrAlertKind, kind)
				inner = inner[1:]
			}
		}
	}

	children := parseBlocks(inner, st)
	for _, c := range children {
		dast.AppendChild(n, c)
	}
	return n, i
}

func isQuoteMarker(l Line) bool {
	if leadingSpaces(l.Raw) > 3 {
		return false
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	return strings.HasPrefix(trimmed, ">")
}

// stripQuoteMarker removes the leading ">" and at most one following
// space, preserving absolute offsets for the remaining content.
func stripQuoteMarker(l Line) Line {
	raw := l.Raw
	skip := 0
	for skip < len(raw) && (raw[skip] == ' ' || raw[skip] == '\t') {
		skip++
	}
	skip++ // the '>'
	if skip < len(raw) && raw[skip] == ' ' {
		skip++
	}
	return stripPrefix(l, skip)
}
