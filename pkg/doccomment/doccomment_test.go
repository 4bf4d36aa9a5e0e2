package doccomment

import (
	"testing"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagsOf(doc *dast.Node) []*dast.Node {
	var out []*dast.Node
	for c := doc.FirstChild.Next; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

func TestExtractJSDocParamAndReturns(t *testing.T) {
	src := []byte("/** Sum.\n * @param {number} a - First.\n * @returns {number} sum\n */")
	docs := Extract(src, StyleJSDoc)
	require.Len(t, docs, 1)

	doc := docs[0]
	desc := doc.FirstChild
	require.Equal(t, dast.NodeParagraph, desc.Kind)
	assert.Equal(t, "Sum.", desc.FirstChild.Str(dast.AttrTextContent))

	tags := tagsOf(doc)
	require.Len(t, tags, 2)
	assert.Equal(t, "param", tags[0].Str(dast.AttrDocTagName))
	assert.Equal(t, "number", tags[0].Str(dast.AttrDocTagType))
	assert.Equal(t, "a", tags[0].Str(dast.AttrDocTagIdent))
	assert.Equal(t, "First.", tags[0].FirstChild.Str(dast.AttrTextContent))

	assert.Equal(t, "returns", tags[1].Str(dast.AttrDocTagName))
	assert.Equal(t, "number", tags[1].Str(dast.AttrDocTagType))
	assert.Equal(t, "sum", tags[1].FirstChild.Str(dast.AttrTextContent))
}

func TestExtractJSDocUnknownTagKeepsFullRemainder(t *testing.T) {
	src := []byte("/**\n * @custom some arbitrary remainder text\n */")
	docs := Extract(src, StyleJSDoc)
	require.Len(t, docs, 1)
	tags := tagsOf(docs[0])
	require.Len(t, tags, 1)
	assert.Equal(t, "custom", tags[0].Str(dast.AttrDocTagName))
	assert.Equal(t, "", tags[0].Str(dast.AttrDocTagType))
	assert.Equal(t, "some arbitrary remainder text", tags[0].FirstChild.Str(dast.AttrTextContent))
}

func TestExtractJavaDocThrowsAndSee(t *testing.T) {
	src := []byte("/**\n * Does a thing.\n *\n * @throws {IOException} on failure\n * @see OtherClass\n */")
	docs := Extract(src, StyleJavaDoc)
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "Does a thing.", doc.FirstChild.FirstChild.Str(dast.AttrTextContent))

	tags := tagsOf(doc)
	require.Len(t, tags, 2)
	assert.Equal(t, "throws", tags[0].Str(dast.AttrDocTagName))
	assert.Equal(t, "IOException", tags[0].Str(dast.AttrDocTagType))
	assert.Equal(t, "see", tags[1].Str(dast.AttrDocTagName))
}

func TestExtractSkipsOrdinaryBlockComment(t *testing.T) {
	src := []byte("/* not a doc comment */\nfunction f() {}")
	docs := Extract(src, StyleJSDoc)
	assert.Empty(t, docs)
}

func TestExtractPyDocGoogleStyle(t *testing.T) {
	src := []byte(`"""Compute the sum.

Args:
    a (int): First operand.
    b (int): Second operand.

Returns:
    int: The sum.
"""`)
	docs := Extract(src, StylePyDoc)
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "Compute the sum.", doc.FirstChild.FirstChild.Str(dast.AttrTextContent))

	tags := tagsOf(doc)
	require.Len(t, tags, 3)
	assert.Equal(t, "param", tags[0].Str(dast.AttrDocTagName))
	assert.Equal(t, "a", tags[0].Str(dast.AttrDocTagIdent))
	assert.Equal(t, "int", tags[0].Str(dast.AttrDocTagType))
	assert.Equal(t, "First operand.", tags[0].FirstChild.Str(dast.AttrTextContent))

	assert.Equal(t, "param", tags[1].Str(dast.AttrDocTagName))
	assert.Equal(t, "b", tags[1].Str(dast.AttrDocTagIdent))

	assert.Equal(t, "returns", tags[2].Str(dast.AttrDocTagName))
	assert.Equal(t, "int", tags[2].Str(dast.AttrDocTagType))
	assert.Equal(t, "The sum.", tags[2].FirstChild.Str(dast.AttrTextContent))
}

func TestExtractPyDocNumpyStyle(t *testing.T) {
	src := []byte(`"""Compute the sum.

Parameters
----------
a : int
    First operand.
b : int
    Second operand.

Returns
-------
int
    The sum.
"""`)
	docs := Extract(src, StylePyDoc)
	require.Len(t, docs, 1)
	tags := tagsOf(docs[0])
	require.Len(t, tags, 3)
	assert.Equal(t, "param", tags[0].Str(dast.AttrDocTagName))
	assert.Equal(t, "a", tags[0].Str(dast.AttrDocTagIdent))
	assert.Equal(t, "int", tags[0].Str(dast.AttrDocTagType))
	assert.Equal(t, "First operand.", tags[0].FirstChild.Str(dast.AttrTextContent))
	assert.Equal(t, "returns", tags[2].Str(dast.AttrDocTagName))
	assert.Equal(t, "int", tags[2].Str(dast.AttrDocTagType))
}

func TestExtractPyDocSphinxStyle(t *testing.T) {
	src := []byte(`"""Compute the sum.

:param a: First operand.
:type a: int
:returns: The sum.
:rtype: int
"""`)
	docs := Extract(src, StylePyDoc)
	require.Len(t, docs, 1)
	tags := tagsOf(docs[0])
	require.Len(t, tags, 4)
	assert.Equal(t, "param", tags[0].Str(dast.AttrDocTagName))
	assert.Equal(t, "a", tags[0].Str(dast.AttrDocTagIdent))
	assert.Equal(t, "First operand.", tags[0].FirstChild.Str(dast.AttrTextContent))
	assert.Equal(t, "param", tags[1].Str(dast.AttrDocTagName))
	assert.Equal(t, "int", tags[1].Str(dast.AttrDocTagType))
	assert.Equal(t, "returns", tags[2].Str(dast.AttrDocTagName))
	assert.Equal(t, "returns", tags[3].Str(dast.AttrDocTagName))
	assert.Equal(t, "int", tags[3].Str(dast.AttrDocTagType))
}

func TestStyleForExtension(t *testing.T) {
	assert.Equal(t, StyleJSDoc, StyleForExtension(".ts"))
	assert.Equal(t, StyleJavaDoc, StyleForExtension(".java"))
	assert.Equal(t, StylePyDoc, StyleForExtension(".py"))
	assert.Equal(t, Style(""), StyleForExtension(".md"))
}

func TestExtractSpansStayWithinCommentSpan(t *testing.T) {
	src := []byte("/** Sum.\n * @param {number} a - First.\n */")
	docs := Extract(src, StyleJSDoc)
	require.Len(t, docs, 1)
	doc := docs[0]
	for c := doc.FirstChild; c != nil; c = c.Next {
		assert.GreaterOrEqual(t, c.Span.Start, doc.Span.Start)
		assert.LessOrEqual(t, c.Span.End, doc.Span.End)
	}
}
