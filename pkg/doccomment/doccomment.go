// Package doccomment locates documentation comments in source files
// (spec.md §4.5) and lifts each one into a DAST fragment: a Document
// whose children are a description Paragraph followed by zero or more
// DocTag nodes. JSDoc/JavaDoc share one comment-block scanner and tag
// grammar; PyDoc docstrings get their own scanner but feed the same
// DocTag builder once a style (Google/NumPy/Sphinx) is detected.
package doccomment

import (
	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/inlineparser"
	"github.com/bukvar/bukvar/pkg/span"
)

// Style identifies which doc-comment convention a source file uses.
type Style string

const (
	StyleJSDoc   Style = "jsdoc"
	StyleJavaDoc Style = "javadoc"
	StylePyDoc   Style = "pydoc"
)

// StyleForExtension maps a recognized source extension (spec.md §6) to
// its doc-comment style, or "" if the extension carries no doc-comment
// convention (markdown files, for instance).
func StyleForExtension(ext string) Style {
	switch ext {
	case ".js", ".ts", ".tsx", ".jsx":
		return StyleJSDoc
	case ".java":
		return StyleJavaDoc
	case ".py", ".pyi":
		return StylePyDoc
	default:
		return ""
	}
}

// Comment is one raw doc-comment block found in a source file, before
// it has been split into description + tags. Lines are already
// stripped of their delimiters (/** */, """ """) and per-line leading
// "*"/indentation, each paired with its absolute source offset.
type Comment struct {
	Lines []rawLine
	Span  span.Span
}

// Extract finds every doc comment in content for the given style and
// builds one DAST fragment per comment. A fragment's root is a
// NodeDocument whose first child is the description Paragraph (possibly
// empty) and whose remaining children are NodeDocTag nodes in source
// order.
func Extract(content []byte, style Style) []*dast.Node {
	var comments []Comment
	switch style {
	case StyleJSDoc, StyleJavaDoc:
		comments = scanBlockComments(content)
	case StylePyDoc:
		comments = scanDocstrings(content)
	default:
		return nil
	}

	docs := make([]*dast.Node, 0, len(comments))
	for _, c := range comments {
		docs = append(docs, buildFragment(c, style))
	}
	return docs
}

func buildFragment(c Comment, style Style) *dast.Node {
	desc, descStart, tagLines := splitDescriptionAndTags(c, style)

	doc := dast.New(dast.NodeDocument)
	doc.Span = c.Span

	para := dast.New(dast.NodeParagraph)
	para.Span = clampSpan(descStart, descStart+len(desc), c.Span)
	inlineparser.ParseLeaf(para, desc, descStart, nil)
	dast.AppendChild(doc, para)

	for _, tl := range tagLines {
		dast.AppendChild(doc, buildDocTag(tl, c.Span))
	}
	return doc
}

// tagLine is one recognized @tag/:directive/section-header line, not
// yet turned into a DocTag node: its pieces are already split out, only
// the description still needs inline parsing.
type tagLine struct {
	name        string
	typ         string
	ident       string
	description string
	offset      int // absolute byte offset of description in the original source
}

func buildDocTag(tl tagLine, commentSpan span.Span) *dast.Node {
	n := dast.New(dast.NodeDocTag)
	n.SetString(dast.AttrDocTagName, tl.name)
	if tl.typ != "" {
		n.SetString(dast.AttrDocTagType, tl.typ)
	}
	if tl.ident != "" {
		n.SetString(dast.AttrDocTagIdent, tl.ident)
	}
	n.Span = clampSpan(tl.offset, tl.offset+len(tl.description), commentSpan)
	inlineparser.ParseLeaf(n, tl.description, tl.offset, nil)
	return n
}

// clampSpan keeps a derived span within its comment's overall span,
// since a tag's description is re-flowed from possibly-disjoint source
// lines and its raw length doesn't track the original byte count
// exactly.
func clampSpan(start, end int, bound span.Span) span.Span {
	if start < bound.Start {
		start = bound.Start
	}
	if end > bound.End {
		end = bound.End
	}
	if end < start {
		end = start
	}
	return span.Span{Start: start, End: end}
}

// splitDescriptionAndTags dispatches to the style-specific splitter.
func splitDescriptionAndTags(c Comment, style Style) (desc string, descStart int, tags []tagLine) {
	switch style {
	case StyleJSDoc, StyleJavaDoc:
		return splitDescriptionAndTagsJSDoc(c.Lines)
	case StylePyDoc:
		return splitDescriptionAndTagsPy(c.Lines)
	default:
		return "", 0, nil
	}
}
