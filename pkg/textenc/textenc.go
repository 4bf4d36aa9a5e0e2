// Package textenc renders a DAST tree as human-readable text, in either
// a compact one-line-per-node form or a pretty indented form (spec.md
// §4.8). Neither form round-trips back into a tree — they exist for
// debugging and golden-file tests, the same role the teacher's TextReporter
// plays for lint output, grounded on its buffered-writer, render-as-you-walk
// style (pkg/reporter/text.go).
package textenc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/rangeset"
)

// EncodeCompact writes doc as one line per node, in pre-order:
// "kind [span_start:span_end] key=val... children-count".
func EncodeCompact(w io.Writer, doc *dast.Node) error {
	bw := bufio.NewWriter(w)
	writeCompact(bw, doc)
	return bw.Flush()
}

func writeCompact(bw *bufio.Writer, n *dast.Node) {
	fmt.Fprintf(bw, "%s [%d:%d]", n.Kind, n.Span.Start, n.Span.End)
	writeAttrs(bw, n)
	fmt.Fprintf(bw, " %d\n", n.ChildCount())
	for c := n.FirstChild; c != nil; c = c.Next {
		writeCompact(bw, c)
	}
}

// EncodePretty writes doc as an indented tree: two spaces per depth,
// children on the following lines.
func EncodePretty(w io.Writer, doc *dast.Node) error {
	bw := bufio.NewWriter(w)
	writePretty(bw, doc, 0)
	return bw.Flush()
}

func writePretty(bw *bufio.Writer, n *dast.Node, depth int) {
	bw.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(bw, "%s [%d:%d]", n.Kind, n.Span.Start, n.Span.End)
	writeAttrs(bw, n)
	bw.WriteByte('\n')
	for c := n.FirstChild; c != nil; c = c.Next {
		writePretty(bw, c, depth+1)
	}
}

func writeAttrs(bw *bufio.Writer, n *dast.Node) {
	for _, k := range sortedAttrKeys(n) {
		fmt.Fprintf(bw, " %s=%s", k, formatAttrVal(n.Attrs[k]))
	}
}

// formatAttrVal renders a single attribute value. The only escaping
// applied is to embedded newlines in string values, rendered as the two
// characters `\n` — spec.md §4.8 rules out anything beyond that.
func formatAttrVal(a dast.Attr) string {
	switch a.Kind {
	case dast.AttrString:
		return escapeNewlines(a.Str)
	case dast.AttrInt:
		return strconv.FormatInt(a.Int, 10)
	case dast.AttrBool:
		return strconv.FormatBool(a.Bool)
	case dast.AttrRangeList:
		return rangeset.Format(a.Ranges)
	default:
		return ""
	}
}

func escapeNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	return strings.ReplaceAll(s, "\n", `\n`)
}

// sortedAttrKeys returns n's attribute keys in a deterministic order, so
// a node's line looks the same on every run regardless of map iteration
// order.
func sortedAttrKeys(n *dast.Node) []string {
	if len(n.Attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
