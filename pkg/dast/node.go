// Package dast defines the Document Abstract Syntax Tree: the single
// unifying Node type that the block parser, inline parser, and
// doc-comment extractors all build, and that the validator, textual
// encoder, and binary codec all consume.
package dast

import "github.com/bukvar/bukvar/pkg/span"

// NodeKind classifies a Node. The same enum spans block, inline, and
// doc-comment kinds; per spec.md §9's design note, this is a tagged
// variant rather than a class hierarchy, and visitors switch on Kind.
type NodeKind uint8

const (
	// Document is the tree root.
	NodeDocument NodeKind = iota

	// Block kinds.
	NodeHeading
	NodeParagraph
	NodeBlockQuote
	NodeList
	NodeListItem
	NodeTable
	NodeTableRow
	NodeTableCell
	NodeCodeBlock
	NodeHtmlBlock
	NodeThematicBreak
	NodeFootnoteDef
	NodeDefinitionList
	NodeDefinitionTerm
	NodeDefinitionDetail
	NodeMathBlock
	NodeContainer

	// Inline kinds.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCode
	NodeLink
	NodeImage
	NodeAutolink
	NodeHardBreak
	NodeSoftBreak
	NodeFootnoteRef
	NodeMathInline
	NodeRawHtml
	NodeTaskMarker

	// Doc-comment kind (spec.md §4.5 / §3).
	NodeDocTag
)

//nolint:cyclop // a flat classification switch is clearer than a lookup table here
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeHeading:
		return "Heading"
	case NodeParagraph:
		return "Paragraph"
	case NodeBlockQuote:
		return "BlockQuote"
	case NodeList:
		return "List"
	case NodeListItem:
		return "ListItem"
	case NodeTable:
		return "Table"
	case NodeTableRow:
		return "TableRow"
	case NodeTableCell:
		return "TableCell"
	case NodeCodeBlock:
		return "CodeBlock"
	case NodeHtmlBlock:
		return "HtmlBlock"
	case NodeThematicBreak:
		return "ThematicBreak"
	case NodeFootnoteDef:
		return "FootnoteDef"
	case NodeDefinitionList:
		return "DefinitionList"
	case NodeDefinitionTerm:
		return "DefinitionTerm"
	case NodeDefinitionDetail:
		return "DefinitionDetail"
	case NodeMathBlock:
		return "MathBlock"
	case NodeContainer:
		return "Container"
	case NodeText:
		return "Text"
	case NodeEmphasis:
		return "Emphasis"
	case NodeStrong:
		return "Strong"
	case NodeStrikethrough:
		return "Strikethrough"
	case NodeCode:
		return "Code"
	case NodeLink:
		return "Link"
	case NodeImage:
		return "Image"
	case NodeAutolink:
		return "Autolink"
	case NodeHardBreak:
		return "HardBreak"
	case NodeSoftBreak:
		return "SoftBreak"
	case NodeFootnoteRef:
		return "FootnoteRef"
	case NodeMathInline:
		return "MathInline"
	case NodeRawHtml:
		return "RawHtml"
	case NodeTaskMarker:
		return "TaskMarker"
	case NodeDocTag:
		return "DocTag"
	default:
		return "Unknown"
	}
}

// IsBlock reports whether k is a block-level kind (spec.md §3 invariant 2/3).
func (k NodeKind) IsBlock() bool {
	switch k {
	case NodeDocument, NodeHeading, NodeParagraph, NodeBlockQuote, NodeList, NodeListItem,
		NodeTable, NodeTableRow, NodeTableCell, NodeCodeBlock, NodeHtmlBlock, NodeThematicBreak,
		NodeFootnoteDef, NodeDefinitionList, NodeDefinitionTerm, NodeDefinitionDetail,
		NodeMathBlock, NodeContainer:
		return true
	default:
		return false
	}
}

// IsInline reports whether k is an inline-level kind.
func (k NodeKind) IsInline() bool {
	switch k {
	case NodeText, NodeEmphasis, NodeStrong, NodeStrikethrough, NodeCode, NodeLink, NodeImage,
		NodeAutolink, NodeHardBreak, NodeSoftBreak, NodeFootnoteRef, NodeMathInline, NodeRawHtml,
		NodeTaskMarker:
		return true
	default:
		return false
	}
}

// Node is a single element of the DAST. Nodes form a tree via doubly
// linked sibling pointers, matching the teacher's mdast.Node shape.
type Node struct {
	Kind NodeKind
	Span span.Span

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Attrs holds the small kind-specific attribute mapping described in
	// spec.md §3 ("small mappings from interned symbol to value"). Keys
	// are plain strings here; pkg/binenc interns them at encode time.
	Attrs map[string]Attr
}

// New creates a detached Node of the given kind with no attributes.
func New(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.Next {
		count++
	}
	return count
}

// Children returns a slice of n's direct children, left to right.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}
