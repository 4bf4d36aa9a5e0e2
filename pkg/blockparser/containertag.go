package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

var selfClosingContainers = map[string]bool{"toc": true}
var pairedContainers = map[string]bool{"steps": true, "tabs": true}

// tryContainerOpen recognizes the custom "<toc/>" self-closing container
// and "<steps>...</steps>" / "<tabs names=\"...\">...</tabs>" paired
// containers, which stay unresolved placeholder Container nodes per
// spec.md's rendering non-goal: their contents are still recursively
// block-parsed, but no semantic meaning is assigned beyond the tag name
// and its attributes.
func tryContainerOpen(lines []Line, st *state) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if !strings.HasPrefix(trimmed, "<") {
		return nil, 0
	}
	body := trimmed[1:]
	name := scanTagName(body)
	if name == "" {
		return nil, 0
	}
	rest := body[len(name):]

	if selfClosingContainers[name] {
		closed := strings.TrimSpace(rest)
		if strings.HasPrefix(closed, "/>") || strings.HasPrefix(closed, ">") {
			n := dast.New(dast.NodeContainer)
			n.SetString(dast.AttrContainerKind, name)
			n.Span = l.Span()
			return n, 1
		}
		return nil, 0
	}

	if !pairedContainers[name] {
		return nil, 0
	}
	gt := strings.IndexByte(rest, '>')
	if gt < 0 {
		return nil, 0
	}
	attrStr := rest[:gt]
	closeTag := "</" + name + ">"

	i := 1
	var inner []Line
	for i < len(lines) {
		if strings.TrimSpace(string(lines[i].Raw)) == closeTag {
			i++
			break
		}
		inner = append(inner, lines[i])
		i++
	}

	n := dast.New(dast.NodeContainer)
	n.SetString(dast.AttrContainerKind, name)
	for k, v := range parseHTMLAttrs(attrStr) {
		n.SetString(dast.AttrContainerAttr+k, v)
	}
	children := parseBlocks(inner, st)
	for _, c := range children {
		dast.AppendChild(n, c)
	}
	if len(inner) > 0 {
		n.Span = span2(l.Start, inner[len(inner)-1].End)
	} else {
		n.Span = l.Span()
	}
	return n, i
}

// parseHTMLAttrs is a small name="value" attribute-token scanner, enough
// for container tags like <tabs names="A,B,C">.
func parseHTMLAttrs(s string) map[string]string {
	out := make(map[string]string)
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			break
		}
		key := strings.TrimSpace(s[:eq])
		rest := s[eq+1:]
		if rest == "" || rest[0] != '"' {
			break
		}
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			break
		}
		out[key] = rest[1 : 1+end]
		s = rest[1+end+1:]
	}
	return out
}
