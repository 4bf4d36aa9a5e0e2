package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// tryDefinitionList recognizes a term line followed immediately by one
// or more ": detail" lines, grouping consecutive term/detail pairs into
// a single DefinitionList node.
func tryDefinitionList(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) < 2 {
		return nil, 0
	}
	if !isDetailLine(lines[1]) || lines[0].IsBlank() || isDetailLine(lines[0]) {
		return nil, 0
	}

	dl := dast.New(dast.NodeDefinitionList)
	i := 0
	for i < len(lines) {
		if lines[i].IsBlank() {
			if i+1 < len(lines) && !lines[i+1].IsBlank() && i+2 < len(lines) && isDetailLine(lines[i+2]) {
				i++
				continue
			}
			break
		}
		if isDetailLine(lines[i]) || i+1 >= len(lines) || !isDetailLine(lines[i+1]) {
			break
		}
		term := dast.New(dast.NodeDefinitionTerm)
		term.SetString(dast.AttrTextContent, strings.TrimSpace(string(lines[i].Raw)))
		term.Span = lines[i].Span()
		st.addLeaf(term)
		dast.AppendChild(dl, term)
		i++

		for i < len(lines) && isDetailLine(lines[i]) {
			detail := dast.New(dast.NodeDefinitionDetail)
			content := strings.TrimPrefix(strings.TrimLeft(string(lines[i].Raw), " \t"), ":")
			detail.SetString(dast.AttrTextContent, strings.TrimSpace(content))
			detail.Span = lines[i].Span()
			st.addLeaf(detail)
			dast.AppendChild(dl, detail)
			i++
		}
	}
	if i == 0 {
		return nil, 0
	}
	dl.Span = joinedSpan(lines[:i])
	return dl, i
}

func isDetailLine(l Line) bool {
	if leadingSpaces(l.Raw) > 3 {
		return false
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	return strings.HasPrefix(trimmed, ": ") || trimmed == ":"
}
