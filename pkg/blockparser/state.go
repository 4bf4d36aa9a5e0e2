package blockparser

import "github.com/bukvar/bukvar/pkg/dast"

// LinkDef is a reference-style link definition collected during block
// parsing ("[label]: /url \"title\""), resolved later by the inline parser.
type LinkDef struct {
	URL   string
	Title string
}

// state threads the document-wide side tables through the recursive block
// parse. Footnote and link definitions are document-scoped even when their
// defining line sits inside a blockquote or list item, so they live here
// rather than on any one container's return value.
type state struct {
	linkDefs      map[string]LinkDef
	footnoteDefs  map[string]*dast.Node
	footnoteOrder []string

	// leaves collects every node whose AttrTextContent holds raw,
	// not-yet-tokenized inline text (paragraphs, headings, table cells,
	// definition terms/details) for the inline-parsing pass that runs
	// after block structure is complete.
	leaves []*dast.Node

	// seenHeadingIDs tracks explicit {#id} and auto-generated heading ids
	// so duplicates can be disambiguated deterministically.
	seenHeadingIDs map[string]int
}

func newState() *state {
	return &state{
		linkDefs:       make(map[string]LinkDef),
		footnoteDefs:   make(map[string]*dast.Node),
		seenHeadingIDs: make(map[string]int),
	}
}

func (st *state) addLeaf(n *dast.Node) {
	st.leaves = append(st.leaves, n)
}

// normalizeLabel applies the case-insensitive, whitespace-collapsed label
// comparison used for both reference links and footnotes (spec.md §9 open
// question, resolved as case-insensitive via strings.ToLower; see DESIGN.md).
func normalizeLabel(label string) string {
	return foldLabel(label)
}
