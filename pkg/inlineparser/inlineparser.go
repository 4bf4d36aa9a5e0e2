// Package inlineparser tokenizes the raw text left on a DAST leaf node's
// AttrTextContent attribute (spec.md §4.4) into inline children: code
// spans, emphasis/strong/strikethrough, links/images, autolinks, math,
// footnote references, and hard/soft breaks. It is a second pass, run
// after block structure settles, mirroring the teacher tokenizer's
// delimiter-run bookkeeping style generalized to this richer inline set.
package inlineparser

import (
	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/span"
)

// LinkDef mirrors blockparser.LinkDef without creating an import cycle;
// the document facade passes its resolved link-definition table in here.
type LinkDef struct {
	URL   string
	Title string
}

// Resolver supplies the document-wide side tables the inline parser
// consults while resolving reference-style links/images and footnote
// references.
type Resolver struct {
	LinkDefs     map[string]LinkDef
	FootnoteDefs map[string]bool // set of normalized labels with a definition

	// UnresolvedRefs accumulates every reference-form link/image (full,
	// collapsed, or shortcut) whose label had no matching definition.
	// These never become Link/Image nodes — an unresolved reference falls
	// back to literal bracket text, same as CommonMark — so the validator
	// can't find them by walking the tree; it reads this side table
	// instead, the same way resolveBrackets itself consults LinkDefs.
	UnresolvedRefs []UnresolvedRef
}

// UnresolvedRef records one reference-style link/image that failed to
// resolve against the document's link-definition table.
type UnresolvedRef struct {
	Label   string
	IsImage bool
	Span    span.Span
}

// ParseLeaf tokenizes a leaf node's raw text in place: it clears
// AttrTextContent's role as the node's content and instead attaches
// Text/Emphasis/Strong/.../FootnoteRef/HardBreak/SoftBreak children.
// baseOffset is the absolute byte offset of text[0] in the source, so
// child spans stay correct.
func ParseLeaf(leaf *dast.Node, text string, baseOffset int, res *Resolver) {
	p := &parser{src: text, base: baseOffset, res: res}
	children := p.parseInlines(0, len(text))
	for _, c := range children {
		dast.AppendChild(leaf, c)
	}
}

type parser struct {
	src  string
	base int
	res  *Resolver
}

func (p *parser) sp(start, end int) span.Span {
	return span.Span{Start: p.base + start, End: p.base + end}
}
