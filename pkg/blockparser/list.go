package blockparser

import (
	"strconv"
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

type listMarker struct {
	ordered bool
	bullet  byte   // '-', '*', '+' for bullets
	delim   byte   // '.' or ')' for ordered
	start   int64  // ordered start number
	width   int    // bytes consumed by the marker itself (not counting indent/trailing space)
	indent  int    // leading indent before the marker
}

// matchListMarker recognizes a bullet ("-","*","+") or ordered ("N.","N)")
// marker at the start of a line, not followed immediately by a non-space
// (an empty list item is allowed).
func matchListMarker(l Line) (listMarker, bool) {
	indent := leadingSpaces(l.Raw)
	if indent > 3 {
		return listMarker{}, false
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if trimmed == "" {
		return listMarker{}, false
	}
	if c := trimmed[0]; c == '-' || c == '*' || c == '+' {
		if len(trimmed) > 1 && trimmed[1] != ' ' && trimmed[1] != '\t' {
			return listMarker{}, false
		}
		return listMarker{bullet: c, width: 1, indent: indent}, true
	}
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 || i > 9 {
		return listMarker{}, false
	}
	if i >= len(trimmed) {
		return listMarker{}, false
	}
	delim := trimmed[i]
	if delim != '.' && delim != ')' {
		return listMarker{}, false
	}
	if i+1 < len(trimmed) && trimmed[i+1] != ' ' && trimmed[i+1] != '\t' {
		return listMarker{}, false
	}
	n, _ := strconv.ParseInt(trimmed[:i], 10, 64)
	return listMarker{ordered: true, delim: delim, start: n, width: i + 1, indent: indent}, true
}

// sameListType reports whether two markers continue the same list
// (bullets must share their bullet char; ordered items just need the
// same delimiter style).
func sameListType(a, b listMarker) bool {
	if a.ordered != b.ordered {
		return false
	}
	if a.ordered {
		return a.delim == b.delim
	}
	return a.bullet == b.bullet
}

// tryList groups a run of same-type list items into a List node. Each
// item's continuation lines are those indented at or past the marker's
// content column; blank lines between items make the list loose.
func tryList(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	first, ok := matchListMarker(lines[0])
	if !ok {
		return nil, 0
	}

	listNode := dast.New(dast.NodeList)
	listNode.SetBool(dast.AttrListOrdered, first.ordered)
	if first.ordered {
		listNode.SetInt(dast.AttrListStart, first.start)
		listNode.SetString(dast.AttrListDelim, string(first.delim))
	} else {
		listNode.SetString(dast.AttrListBullet, string(first.bullet))
	}

	i := 0
	tight := true
	blankBeforeNext := false
	for i < len(lines) {
		m, ok := matchListMarker(lines[i])
		if !ok || !sameListType(m, first) {
			break
		}
		itemStart := i
		contentCol := m.indent + m.width
		// consume the trailing space(s) after the marker up to the content column
		raw := lines[i].Raw
		col := m.indent + m.width
		for col < len(raw) && (raw[col] == ' ' || raw[col] == '\t') && col < contentCol+1 {
			col++
		}
		firstItemLine := stripPrefix(lines[i], minInt(col, len(raw)))
		itemLines := []Line{firstItemLine}
		i++
		blankRunBeforeItem := blankBeforeNext
		blankBeforeNext = false
		sawBlankInItem := false
		for i < len(lines) {
			if lines[i].IsBlank() {
				// A blank line continues the item only if content resumes
				// indented under it; otherwise it ends the item/list.
				if i+1 < len(lines) {
					nextIndent := leadingSpaces(lines[i+1].Raw)
					if nextIndent >= contentCol && !lines[i+1].IsBlank() {
						itemLines = append(itemLines, stripPrefix(lines[i], minInt(contentCol, len(lines[i].Raw))))
						sawBlankInItem = true
						i++
						continue
					}
				}
				break
			}
			ind := leadingSpaces(lines[i].Raw)
			if ind >= contentCol {
				itemLines = append(itemLines, stripPrefix(lines[i], minInt(contentCol, len(lines[i].Raw))))
				i++
				continue
			}
			if _, isMarker := matchListMarker(lines[i]); isMarker {
				break
			}
			// lazy continuation of the item's trailing paragraph
			itemLines = append(itemLines, lines[i])
			i++
		}
		if sawBlankInItem {
			tight = false
		}
		if i < len(lines) && lines[i].IsBlank() {
			blankBeforeNext = true
			j := i
			for j < len(lines) && lines[j].IsBlank() {
				j++
			}
			if j < len(lines) {
				if nm, isMarker := matchListMarker(lines[j]); isMarker && sameListType(nm, first) {
					tight = false
				}
			}
			i = j
		}
		_ = blankRunBeforeItem
		item := buildListItem(itemLines, st)
		if m.ordered {
			item.SetInt(dast.AttrListStart, m.start)
		}
		item.Span = joinedSpan(lines[itemStart:i])
		dast.AppendChild(listNode, item)
	}
	listNode.SetBool(dast.AttrListTight, tight)
	listNode.Span = joinedSpan(lines[:i])
	return listNode, i
}

// buildListItem strips an optional leading task marker ("[ ] "/"[x] "),
// records it on the ListItem, and recursively block-parses the remaining
// content as the item's children.
func buildListItem(lines []Line, st *state) *dast.Node {
	item := dast.New(dast.NodeListItem)
	item.SetString(dast.AttrTaskState, string(dast.TaskNone))
	if len(lines) > 0 {
		raw := string(lines[0].Raw)
		switch {
		case strings.HasPrefix(raw, "[ ] "):
			item.SetString(dast.AttrTaskState, string(dast.TaskUnchecked))
			lines[0] = stripPrefix(lines[0], 4)
		case strings.HasPrefix(raw, "[x] "), strings.HasPrefix(raw, "[X] "):
			item.SetString(dast.AttrTaskState, string(dast.TaskChecked))
			lines[0] = stripPrefix(lines[0], 4)
		}
	}
	children := parseBlocks(lines, st)
	for _, c := range children {
		dast.AppendChild(item, c)
	}
	return item
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
