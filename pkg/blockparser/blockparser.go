// Package blockparser implements the line-oriented block structure pass
// of the markdown parser (spec.md §4.3): it turns a buffer of bytes into
// the block-level skeleton of a DAST tree, leaving every leaf's inline
// content as raw text for the inline parser to tokenize afterward.
package blockparser

import (
	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/frontmatter"
)

// Result is the output of a top-level Parse: the document root plus the
// document-wide side tables the inline parser and validator both need.
type Result struct {
	Document     *dast.Node
	Frontmatter  frontmatter.Result
	LinkDefs     map[string]LinkDef
	FootnoteDefs map[string]*dast.Node
	// Leaves holds every node whose AttrTextContent attribute still needs
	// inline tokenization; the document facade runs the inline parser over
	// each of these after block structure settles.
	Leaves []*dast.Node
}

// Parse runs the full block-structure pass over content, skipping any
// leading frontmatter fence first.
func Parse(content []byte) *Result {
	fm := frontmatter.Parse(content)
	body := content
	offset := 0
	if fm.Present {
		body = content[fm.Span.End:]
		offset = fm.Span.End
	}

	lines := splitLines(body)
	for i := range lines {
		lines[i].Start += offset
		lines[i].End += offset
	}

	st := newState()
	doc := dast.New(dast.NodeDocument)
	doc.Span = span2(0, len(content))
	for _, c := range parseBlocks(lines, st) {
		dast.AppendChild(doc, c)
	}

	return &Result{
		Document:     doc,
		Frontmatter:  fm,
		LinkDefs:     st.linkDefs,
		FootnoteDefs: st.footnoteDefs,
		Leaves:       st.leaves,
	}
}

// parseBlocks is the recursive block-opener dispatch loop shared by the
// document root, blockquotes, list items, and custom containers. Openers
// are tried in spec.md §4.3's precedence order; the first match wins.
func parseBlocks(lines []Line, st *state) []*dast.Node {
	var out []*dast.Node
	i := 0
	prevBlank := true
	for i < len(lines) {
		if lines[i].IsBlank() {
			i++
			prevBlank = true
			continue
		}

		var node *dast.Node
		consumed := 0

		if node, consumed = tryThematicBreak(lines[i:]); consumed == 0 {
			node, consumed = tryFencedCode(lines[i:])
		}
		if consumed == 0 {
			node, consumed = tryMathFence(lines[i:])
		}
		if consumed == 0 {
			node, consumed = tryHTMLBlock(lines[i:])
		}
		if consumed == 0 {
			node, consumed = tryHeadingATX(lines[i:], st)
		}
		if consumed == 0 && trySetext(st, out, lines[i]) {
			i++
			prevBlank = false
			continue
		}
		if consumed == 0 {
			node, consumed = tryBlockquote(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = tryList(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = tryFootnoteDef(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = tryLinkDef(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = tryDefinitionList(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = tryTable(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = tryContainerOpen(lines[i:], st)
		}
		if consumed == 0 {
			node, consumed = paragraphStep(lines[i:], out, prevBlank, st)
		}

		if node != nil {
			out = append(out, node)
		}
		if consumed == 0 {
			consumed = 1 // never stall on an unrecognized line
		}
		i += consumed
		prevBlank = false
	}
	return out
}

// paragraphStep either extends the previous open paragraph (lazy
// continuation: no blank line intervened, and the previous block is
// still a Paragraph) or starts a new one.
func paragraphStep(lines []Line, out []*dast.Node, prevBlank bool, st *state) (*dast.Node, int) {
	if !prevBlank && len(out) > 0 && out[len(out)-1].Kind == dast.NodeParagraph {
		last := out[len(out)-1]
		text := last.Str(dast.AttrTextContent) + "\n" + string(lines[0].Raw)
		last.SetString(dast.AttrTextContent, text)
		last.Span = span2(last.Span.Start, lines[0].End)
		return nil, 1
	}
	p := dast.New(dast.NodeParagraph)
	p.SetString(dast.AttrTextContent, string(lines[0].Raw))
	p.Span = lines[0].Span()
	st.addLeaf(p)
	return p, 1
}
