package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAMLFrontmatter(t *testing.T) {
	src := []byte("---\ntitle: Hello\nauthor: Jane\n---\nbody\n")
	res := Parse(src)
	require.True(t, res.Present)
	assert.Equal(t, FormatYAML, res.Format)
	assert.Equal(t, []string{"title", "author"}, res.Keys)
	assert.Equal(t, "Hello", res.Values["title"])
	assert.Equal(t, 34, res.Span.End)
}

func TestParseTOMLFrontmatter(t *testing.T) {
	src := []byte("+++\ntitle = \"Hi\"\ndraft = true\n+++\nbody\n")
	res := Parse(src)
	require.True(t, res.Present)
	assert.Equal(t, FormatTOML, res.Format)
	assert.Equal(t, "Hi", res.Values["title"])
	assert.Equal(t, "true", res.Values["draft"])
}

func TestParseNoFrontmatter(t *testing.T) {
	res := Parse([]byte("# Hello\n"))
	assert.False(t, res.Present)
}

func TestParseUnterminatedFrontmatterReverts(t *testing.T) {
	src := []byte("---\ntitle: Hello\nno closing fence\n")
	res := Parse(src)
	assert.False(t, res.Present)
}

func TestParseYAMLNestedValuePreservedRaw(t *testing.T) {
	src := []byte("---\ntags:\n  - a\n  - b\n---\nbody\n")
	res := Parse(src)
	require.True(t, res.Present)
	assert.Contains(t, res.Values["tags"], "a")
}
