package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// tryFootnoteDef recognizes "[^label]: content", consuming any following
// lines indented by 4+ spaces as continuation. The first definition for a
// given (case-folded) label wins for resolution; every definition is kept
// as a sibling FootnoteDef node so nothing is lost (spec.md §9 open
// question, see DESIGN.md).
func tryFootnoteDef(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	if leadingSpaces(l.Raw) > 3 {
		return nil, 0
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if !strings.HasPrefix(trimmed, "[^") {
		return nil, 0
	}
	close := strings.IndexByte(trimmed, ']')
	if close < 0 || close+1 >= len(trimmed) || trimmed[close+1] != ':' {
		return nil, 0
	}
	label := trimmed[2:close]
	rest := strings.TrimLeft(trimmed[close+2:], " \t")

	i := 1
	body := []Line{{Raw: []byte(rest), Start: l.Start, End: l.End}}
	for i < len(lines) {
		if lines[i].IsBlank() {
			if i+1 < len(lines) && leadingSpaces(lines[i+1].Raw) >= 4 {
				body = append(body, stripPrefix(lines[i], 0))
				i++
				continue
			}
			break
		}
		if leadingSpaces(lines[i].Raw) < 4 {
			break
		}
		body = append(body, stripPrefix(lines[i], 4))
		i++
	}

	n := dast.New(dast.NodeFootnoteDef)
	n.SetString(dast.AttrFootnoteLabel, label)
	n.Span = joinedSpan(lines[:i])
	children := parseBlocks(body, st)
	if len(children) == 0 {
		p := dast.New(dast.NodeParagraph)
		p.SetString(dast.AttrTextContent, string(joinedText(body)))
		p.Span = joinedSpan(body)
		st.addLeaf(p)
		children = []*dast.Node{p}
	}
	for _, c := range children {
		dast.AppendChild(n, c)
	}

	key := normalizeLabel(label)
	if _, exists := st.footnoteDefs[key]; !exists {
		st.footnoteDefs[key] = n
		st.footnoteOrder = append(st.footnoteOrder, key)
	}
	return n, i
}

// tryLinkDef recognizes a reference-style link definition line,
// "[label]: url \"optional title\"". It returns a nil node (the
// definition is not itself rendered) but a non-zero consumed count.
func tryLinkDef(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	if leadingSpaces(l.Raw) > 3 {
		return nil, 0
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if !strings.HasPrefix(trimmed, "[") {
		return nil, 0
	}
	close := strings.IndexByte(trimmed, ']')
	if close < 0 || close+1 >= len(trimmed) || trimmed[close+1] != ':' {
		return nil, 0
	}
	label := trimmed[1:close]
	if label == "" || strings.HasPrefix(label, "^") {
		return nil, 0
	}
	rest := strings.TrimSpace(trimmed[close+2:])
	if rest == "" {
		return nil, 0
	}
	url, remainder := scanLinkDest(rest)
	title := scanLinkTitle(strings.TrimSpace(remainder))

	key := normalizeLabel(label)
	if _, exists := st.linkDefs[key]; !exists {
		st.linkDefs[key] = LinkDef{URL: url, Title: title}
	}
	return nil, 1
}

func scanLinkDest(s string) (dest string, rest string) {
	if s == "" {
		return "", ""
	}
	if s[0] == '<' {
		if end := strings.IndexByte(s, '>'); end > 0 {
			return s[1:end], s[end+1:]
		}
	}
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return s[:i], s[i:]
}

func scanLinkTitle(s string) string {
	if len(s) >= 2 {
		open, close := s[0], s[len(s)-1]
		if (open == '"' && close == '"') || (open == '\'' && close == '\'') || (open == '(' && close == ')') {
			return s[1 : len(s)-1]
		}
	}
	return ""
}
