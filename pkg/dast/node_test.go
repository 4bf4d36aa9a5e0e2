package dast

import (
	"testing"

	"github.com/bukvar/bukvar/pkg/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChildMaintainsSiblings(t *testing.T) {
	doc := New(NodeDocument)
	p1 := New(NodeParagraph)
	p2 := New(NodeParagraph)
	AppendChild(doc, p1)
	AppendChild(doc, p2)

	require.Equal(t, 2, doc.ChildCount())
	assert.Equal(t, p1, doc.FirstChild)
	assert.Equal(t, p2, doc.LastChild)
	assert.Equal(t, p2, p1.Next)
	assert.Equal(t, p1, p2.Prev)
}

func TestRemoveChild(t *testing.T) {
	doc := New(NodeDocument)
	p1 := New(NodeParagraph)
	p2 := New(NodeParagraph)
	AppendChild(doc, p1)
	AppendChild(doc, p2)

	RemoveChild(doc, p1)
	assert.Equal(t, 1, doc.ChildCount())
	assert.Equal(t, p2, doc.FirstChild)
	assert.Nil(t, p1.Parent)
}

func TestInsertAfter(t *testing.T) {
	doc := New(NodeDocument)
	p1 := New(NodeParagraph)
	p3 := New(NodeParagraph)
	AppendChild(doc, p1)
	AppendChild(doc, p3)

	p2 := New(NodeParagraph)
	InsertAfter(p1, p2)

	assert.Equal(t, []*Node{p1, p2, p3}, doc.Children())
}

func TestWalkPreOrder(t *testing.T) {
	doc := New(NodeDocument)
	h := New(NodeHeading)
	p := New(NodeParagraph)
	AppendChild(doc, h)
	AppendChild(doc, p)

	var seen []NodeKind
	_ = Walk(doc, func(n *Node) error {
		seen = append(seen, n.Kind)
		return nil
	})
	assert.Equal(t, []NodeKind{NodeDocument, NodeHeading, NodeParagraph}, seen)
}

func TestFindByKind(t *testing.T) {
	doc := New(NodeDocument)
	AppendChild(doc, New(NodeHeading))
	AppendChild(doc, New(NodeParagraph))
	AppendChild(doc, New(NodeHeading))

	assert.Len(t, FindByKind(doc, NodeHeading), 2)
}

func TestAttrAccessors(t *testing.T) {
	n := New(NodeHeading)
	n.SetInt(AttrHeadingLevel, 2)
	n.SetString(AttrHeadingID, "intro")
	n.SetBool(AttrListTight, true)

	assert.Equal(t, int64(2), n.IntAttrVal(AttrHeadingLevel))
	assert.Equal(t, "intro", n.Str(AttrHeadingID))
	assert.True(t, n.BoolAttrVal(AttrListTight))
	assert.Equal(t, "", n.Str("missing"))
}

func TestCheckSpanMonotonicity(t *testing.T) {
	doc := New(NodeDocument)
	doc.Span = span.Span{Start: 0, End: 10}
	child := New(NodeParagraph)
	child.Span = span.Span{Start: 0, End: 10}
	AppendChild(doc, child)
	assert.NoError(t, CheckSpanMonotonicity(doc))

	bad := New(NodeParagraph)
	bad.Span = span.Span{Start: 0, End: 20}
	AppendChild(doc, bad)
	assert.Error(t, CheckSpanMonotonicity(doc))
}

func TestEqualStructural(t *testing.T) {
	a := New(NodeText)
	a.SetString(AttrTextContent, "hi")
	b := New(NodeText)
	b.SetString(AttrTextContent, "hi")
	assert.True(t, Equal(a, b))

	c := New(NodeText)
	c.SetString(AttrTextContent, "bye")
	assert.False(t, Equal(a, c))
}
