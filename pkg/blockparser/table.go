package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// tryTable recognizes a GFM pipe table: a header row, a separator row of
// "---"/":--"/"--:"/":-:" cells, and zero or more body rows. If the
// second line isn't a valid separator, nothing matches and the header
// line falls through to become an ordinary paragraph (spec.md invariant:
// a malformed table demotes to a paragraph rather than erroring).
func tryTable(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) < 2 {
		return nil, 0
	}
	if !looksLikeRow(lines[0]) {
		return nil, 0
	}
	aligns, ok := parseSeparatorRow(lines[1])
	if !ok {
		return nil, 0
	}

	table := dast.New(dast.NodeTable)
	table.SetString(dast.AttrTableAlign, strings.Join(alignStrings(aligns), ","))

	headerCells := splitRow(lines[0])
	headerRow := buildTableRow(headerCells, aligns, lines[0], st)
	dast.AppendChild(table, headerRow)

	i := 2
	for i < len(lines) {
		if lines[i].IsBlank() || !looksLikeRow(lines[i]) {
			break
		}
		cells := splitRow(lines[i])
		row := buildTableRow(cells, aligns, lines[i], st)
		dast.AppendChild(table, row)
		i++
	}
	table.Span = joinedSpan(lines[:i])
	return table, i
}

func looksLikeRow(l Line) bool {
	trimmed := strings.TrimSpace(string(l.Raw))
	return strings.Contains(trimmed, "|") && trimmed != ""
}

// parseSeparatorRow validates and parses the "---|:--:|--:" row.
func parseSeparatorRow(l Line) ([]dast.Align, bool) {
	trimmed := strings.TrimSpace(string(l.Raw))
	trimmed = strings.Trim(trimmed, "|")
	if trimmed == "" {
		return nil, false
	}
	cells := strings.Split(trimmed, "|")
	aligns := make([]dast.Align, 0, len(cells))
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := strings.Trim(c, ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, dast.AlignCenter)
		case right:
			aligns = append(aligns, dast.AlignRight)
		case left:
			aligns = append(aligns, dast.AlignLeft)
		default:
			aligns = append(aligns, dast.AlignNone)
		}
	}
	return aligns, true
}

func alignStrings(aligns []dast.Align) []string {
	out := make([]string, len(aligns))
	for i, a := range aligns {
		out[i] = string(a)
	}
	return out
}

// splitRow splits a pipe-delimited row into cell text, honoring
// backslash-escaped pipes and trimming at most one leading/trailing
// unescaped "|".
func splitRow(l Line) []string {
	raw := strings.TrimSpace(string(l.Raw))
	raw = strings.TrimPrefix(raw, "|")
	if strings.HasSuffix(raw, "|") && !strings.HasSuffix(raw, "\\|") {
		raw = raw[:len(raw)-1]
	}

	var cells []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			cur.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			cur.WriteByte(c)
			escaped = true
		case '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// buildTableRow pads or truncates a row's cells to the header's column
// count (spec.md invariant 5), setting each TableCell's align attribute
// from the separator row.
func buildTableRow(cells []string, aligns []dast.Align, line Line, st *state) *dast.Node {
	row := dast.New(dast.NodeTableRow)
	row.Span = line.Span()
	n := len(aligns)
	for i := 0; i < n; i++ {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := dast.New(dast.NodeTableCell)
		cell.SetString(dast.AttrTextContent, text)
		cell.SetString(dast.AttrTableAlign, string(aligns[i]))
		cell.Span = line.Span()
		st.addLeaf(cell)
		dast.AppendChild(row, cell)
	}
	return row
}
