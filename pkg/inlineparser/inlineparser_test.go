package inlineparser

import (
	"testing"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseText(t *testing.T, text string, res *Resolver) []*dast.Node {
	leaf := dast.New(dast.NodeParagraph)
	ParseLeaf(leaf, text, 0, res)
	return leaf.Children()
}

func TestParseLeafPlainText(t *testing.T) {
	children := parseText(t, "hello world", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeText, children[0].Kind)
	assert.Equal(t, "hello world", children[0].Str(dast.AttrTextContent))
}

func TestParseLeafEmphasis(t *testing.T) {
	children := parseText(t, "plain *em* text", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeEmphasis, children[1].Kind)
	assert.Equal(t, "em", children[1].FirstChild.Str(dast.AttrTextContent))
}

func TestParseLeafStrong(t *testing.T) {
	children := parseText(t, "**bold**", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeStrong, children[0].Kind)
}

func TestParseLeafStrikethrough(t *testing.T) {
	children := parseText(t, "~~gone~~", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeStrikethrough, children[0].Kind)
}

func TestParseLeafTripleTildeLeavesLoneTildeLiteral(t *testing.T) {
	// "~~~a~~~" matches the inner "~~"s as strikethrough, consuming 2 of
	// the 3 tildes on each side; the leftover single '~' on each side must
	// stay literal text rather than being forced into a second,
	// impossibly-narrow Strikethrough node.
	children := parseText(t, "~~~a~~~", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeText, children[0].Kind)
	assert.Equal(t, "~", children[0].Str(dast.AttrTextContent))
	assert.Equal(t, dast.NodeStrikethrough, children[1].Kind)
	assert.Equal(t, "a", children[1].FirstChild.Str(dast.AttrTextContent))
	assert.Equal(t, dast.NodeText, children[2].Kind)
	assert.Equal(t, "~", children[2].Str(dast.AttrTextContent))
}

func TestParseLeafSingleTildeIsLiteral(t *testing.T) {
	children := parseText(t, "a~b", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeText, children[0].Kind)
	assert.Equal(t, "a~b", children[0].Str(dast.AttrTextContent))
}

func TestParseLeafIntrawordUnderscoreIsLiteral(t *testing.T) {
	children := parseText(t, "snake_case_name", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeText, children[0].Kind)
	assert.Equal(t, "snake_case_name", children[0].Str(dast.AttrTextContent))
}

func TestParseLeafCodeSpan(t *testing.T) {
	children := parseText(t, "use `fmt.Println` here", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeCode, children[1].Kind)
	assert.Equal(t, "fmt.Println", children[1].Str(dast.AttrCodeContent))
}

func TestParseLeafCodeSpanStripsPadding(t *testing.T) {
	children := parseText(t, "` x = 1 `", nil)
	require.Len(t, children, 1)
	assert.Equal(t, "x = 1", children[0].Str(dast.AttrCodeContent))
}

func TestParseLeafInlineLink(t *testing.T) {
	children := parseText(t, "see [docs](https://example.com \"Docs\") now", nil)
	require.Len(t, children, 3)
	link := children[1]
	assert.Equal(t, dast.NodeLink, link.Kind)
	assert.Equal(t, "https://example.com", link.Str(dast.AttrLinkURL))
	assert.Equal(t, "Docs", link.Str(dast.AttrLinkTitle))
	assert.Equal(t, "docs", link.FirstChild.Str(dast.AttrTextContent))
}

func TestParseLeafReferenceLink(t *testing.T) {
	res := &Resolver{LinkDefs: map[string]LinkDef{"foo": {URL: "/foo", Title: "Foo"}}}
	children := parseText(t, "go to [foo][] page", res)
	link := children[1]
	require.Equal(t, dast.NodeLink, link.Kind)
	assert.Equal(t, "/foo", link.Str(dast.AttrLinkURL))
}

func TestParseLeafShortcutReference(t *testing.T) {
	res := &Resolver{LinkDefs: map[string]LinkDef{"foo": {URL: "/foo"}}}
	children := parseText(t, "go to [foo] page", res)
	link := children[1]
	require.Equal(t, dast.NodeLink, link.Kind)
	assert.Equal(t, "/foo", link.Str(dast.AttrLinkURL))
}

func TestParseLeafUnresolvedLinkFallsBackToText(t *testing.T) {
	children := parseText(t, "go to [foo] page", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeText, children[0].Kind)
	assert.Contains(t, children[0].Str(dast.AttrTextContent), "[foo]")
}

func TestParseLeafImage(t *testing.T) {
	children := parseText(t, "![alt text](/img.png)", nil)
	require.Len(t, children, 1)
	assert.Equal(t, dast.NodeImage, children[0].Kind)
	assert.Equal(t, "/img.png", children[0].Str(dast.AttrLinkURL))
	assert.Equal(t, "alt text", children[0].Str(dast.AttrTextContent))
}

func TestParseLeafAutolink(t *testing.T) {
	children := parseText(t, "see <https://example.com> please", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeAutolink, children[1].Kind)
	assert.Equal(t, "https://example.com", children[1].Str(dast.AttrLinkURL))
}

func TestParseLeafBareAutolink(t *testing.T) {
	children := parseText(t, "visit https://example.com/path.", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeAutolink, children[1].Kind)
	assert.Equal(t, "https://example.com/path", children[1].Str(dast.AttrLinkURL))
}

func TestParseLeafFootnoteRef(t *testing.T) {
	children := parseText(t, "note[^1] here", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeFootnoteRef, children[1].Kind)
	assert.Equal(t, "1", children[1].Str(dast.AttrFootnoteLabel))
}

func TestParseLeafMathInline(t *testing.T) {
	children := parseText(t, "energy $E=mc^2$ formula", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeMathInline, children[1].Kind)
	assert.Equal(t, "E=mc^2", children[1].Str(dast.AttrCodeContent))
}

func TestParseLeafHardBreak(t *testing.T) {
	children := parseText(t, "line one  \nline two", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeHardBreak, children[1].Kind)
}

func TestParseLeafSoftBreak(t *testing.T) {
	children := parseText(t, "line one\nline two", nil)
	require.Len(t, children, 3)
	assert.Equal(t, dast.NodeSoftBreak, children[1].Kind)
}

func TestParseLeafEscapedCharacter(t *testing.T) {
	children := parseText(t, "\\*not emphasis\\*", nil)
	require.Len(t, children, 1)
	assert.Equal(t, "*not emphasis*", children[0].Str(dast.AttrTextContent))
}

func TestParseLeafRawHTML(t *testing.T) {
	children := parseText(t, "a <span class=\"x\">tag</span> inline", nil)
	require.GreaterOrEqual(t, len(children), 3)
	assert.Equal(t, dast.NodeRawHtml, children[1].Kind)
}
