package document

import (
	"encoding/json"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/rangeset"
	"github.com/bukvar/bukvar/pkg/validator"
)

// JSONOptions configures ToJSON.
type JSONOptions struct {
	// Pretty indents the output with two-space steps instead of emitting
	// compact JSON.
	Pretty bool
	// IncludeSpans includes each node's byte span, mirroring the binary
	// codec's has-source-map flag (spec.md §4.7/§6 "--sourcemap").
	IncludeSpans bool
}

// jsonNode is the JSON-friendly mirror of dast.Node: a plain tree
// without the Parent/Prev/Next pointers, which would make encoding/json
// recurse into a cycle.
type jsonNode struct {
	Kind     string         `json:"kind"`
	Span     *jsonSpan      `json:"span,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Children []*jsonNode    `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonDiagnostic struct {
	Severity string    `json:"severity"`
	Span     *jsonSpan `json:"span"`
	Message  string    `json:"message"`
}

type jsonDocument struct {
	Document    *jsonNode        `json:"document"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

// ToJSON serializes a Result as JSON (spec.md §6's "-f json" output
// format): the same tree the binary codec encodes, in a self-describing
// form meant for humans and other tools rather than for pkg/binenc's
// interned-string compactness.
func ToJSON(res *Result, opts JSONOptions) ([]byte, error) {
	out := jsonDocument{Document: toJSONNode(res.Document, opts.IncludeSpans)}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
			Severity: string(d.Severity),
			Span:     &jsonSpan{Start: d.Span.Start, End: d.Span.End},
			Message:  d.Message,
		})
	}

	if opts.Pretty {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func toJSONNode(n *dast.Node, includeSpans bool) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{Kind: n.Kind.String()}
	if includeSpans {
		jn.Span = &jsonSpan{Start: n.Span.Start, End: n.Span.End}
	}
	if len(n.Attrs) > 0 {
		jn.Attrs = make(map[string]any, len(n.Attrs))
		for k, a := range n.Attrs {
			jn.Attrs[k] = jsonAttrVal(a)
		}
	}
	for c := n.FirstChild; c != nil; c = c.Next {
		jn.Children = append(jn.Children, toJSONNode(c, includeSpans))
	}
	return jn
}

func jsonAttrVal(a dast.Attr) any {
	switch a.Kind {
	case dast.AttrString:
		return a.Str
	case dast.AttrInt:
		return a.Int
	case dast.AttrBool:
		return a.Bool
	case dast.AttrRangeList:
		return rangeset.Format(a.Ranges)
	default:
		return nil
	}
}

// diagnosticsSeverityCounts counts a Result's diagnostics by severity.
func diagnosticsSeverityCounts(diags []validator.Diagnostic) map[string]int {
	counts := make(map[string]int, 2)
	for _, d := range diags {
		counts[string(d.Severity)]++
	}
	return counts
}
