// Package validator walks a parsed DAST tree and reports structural
// problems a full parse can't reject outright: dangling references,
// duplicate identifiers, and the like (spec.md §4.6). It never mutates
// the tree — diagnostics are returned as a flat, independent slice, the
// same "diagnostics are a sibling structure" discipline the teacher's
// lint engine uses, trimmed from a pluggable 50-rule registry down to
// six fixed checks plus the duplicate-footnote-definition check DESIGN.md
// records as an Open Question resolution.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/inlineparser"
	"github.com/bukvar/bukvar/pkg/span"
)

// Severity classifies how serious a Diagnostic is. Unlike the teacher's
// Severity, this one isn't rule-configurable — every check below always
// reports at the same fixed severity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding produced by Validate: a severity, the span
// it concerns, and a human-readable message. There is no RuleID/FilePath/
// FixEdits the way the teacher's Diagnostic carries them — there is no
// rule registry to name, no fix engine to stage edits, and the caller
// already knows which file it asked to validate.
type Diagnostic struct {
	Severity Severity
	Span     span.Span
	Message  string
}

// Input bundles the DAST tree with the one piece of context the tree
// itself can't carry: unresolved reference-style links/images never
// become Link/Image nodes (an unresolved reference falls back to literal
// bracket text, same as CommonMark), so Validate can't discover them by
// walking — it needs the inline parser's side table instead.
type Input struct {
	Document       *dast.Node
	UnresolvedRefs []inlineparser.UnresolvedRef
}

// Validate runs every check against in and returns their combined
// diagnostics in document order.
func Validate(in Input) []Diagnostic {
	var diags []Diagnostic
	diags = append(diags, checkUnresolvedFootnoteRefs(in.Document)...)
	diags = append(diags, checkUnresolvedLinks(in.UnresolvedRefs)...)
	diags = append(diags, checkDuplicateHeadingIDs(in.Document)...)
	diags = append(diags, checkDuplicateFootnoteDefs(in.Document)...)
	diags = append(diags, checkBrokenImageURLs(in.Document)...)
	diags = append(diags, checkEmptyTableHeaders(in.Document)...)
	diags = append(diags, checkNonMonotonicListStarts(in.Document)...)

	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start < diags[j].Span.Start
	})
	return diags
}

func checkUnresolvedFootnoteRefs(doc *dast.Node) []Diagnostic {
	defs := make(map[string]bool)
	for _, def := range dast.FindByKind(doc, dast.NodeFootnoteDef) {
		defs[foldLabel(def.Str(dast.AttrFootnoteLabel))] = true
	}

	var diags []Diagnostic
	for _, ref := range dast.FindByKind(doc, dast.NodeFootnoteRef) {
		label := ref.Str(dast.AttrFootnoteLabel)
		if !defs[foldLabel(label)] {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Span:     ref.Span,
				Message:  fmt.Sprintf("footnote reference %q has no definition", label),
			})
		}
	}
	return diags
}

func checkUnresolvedLinks(refs []inlineparser.UnresolvedRef) []Diagnostic {
	var diags []Diagnostic
	var prev span.Span
	for i, r := range refs {
		// A failed full reference "[text][label]" leaves "[label]" to be
		// retried as a shortcut, which records the same label again inside
		// the first span; only the outer one is reported.
		nested := i > 0 && prev.ContainsSpan(r.Span)
		if !nested {
			prev = r.Span
		}
		if r.IsImage || nested {
			continue
		}
		diags = append(diags, Diagnostic{
			Severity: SeverityError,
			Span:     r.Span,
			Message:  fmt.Sprintf("link reference %q has no definition", r.Label),
		})
	}
	return diags
}

func checkDuplicateHeadingIDs(doc *dast.Node) []Diagnostic {
	seen := make(map[string]bool)
	var diags []Diagnostic
	for _, h := range dast.FindByKind(doc, dast.NodeHeading) {
		id := h.Str(dast.AttrHeadingID)
		if id == "" {
			continue
		}
		if seen[id] {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Span:     h.Span,
				Message:  fmt.Sprintf("duplicate heading id %q", id),
			})
			continue
		}
		seen[id] = true
	}
	return diags
}

// checkDuplicateFootnoteDefs flags every FootnoteDef after the first one
// carrying a given label. The first-seen definition is what the
// document's resolution table actually uses (first-wins, recorded in
// DESIGN.md); later ones are kept in the tree for lossless round-trip but
// are otherwise dead, so they're worth flagging the same way a duplicate
// heading id is.
func checkDuplicateFootnoteDefs(doc *dast.Node) []Diagnostic {
	seen := make(map[string]bool)
	var diags []Diagnostic
	for _, def := range dast.FindByKind(doc, dast.NodeFootnoteDef) {
		label := foldLabel(def.Str(dast.AttrFootnoteLabel))
		if seen[label] {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Span:     def.Span,
				Message:  fmt.Sprintf("duplicate footnote definition %q", def.Str(dast.AttrFootnoteLabel)),
			})
			continue
		}
		seen[label] = true
	}
	return diags
}

// checkBrokenImageURLs flags relative image destinations that are empty
// or syntactically malformed. This never touches the filesystem — it
// can't tell whether a relative path actually resolves to a file, only
// whether the URL text itself is well-formed (spec.md §4.6: "purely
// syntactic").
func checkBrokenImageURLs(doc *dast.Node) []Diagnostic {
	var diags []Diagnostic
	for _, img := range dast.FindByKind(doc, dast.NodeImage) {
		url := img.Str(dast.AttrLinkURL)
		if isAbsoluteURL(url) {
			continue
		}
		if reason, broken := brokenRelativeURL(url); broken {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Span:     img.Span,
				Message:  fmt.Sprintf("image has broken relative url: %s", reason),
			})
		}
	}
	return diags
}

// isAbsoluteURL mirrors the teacher's own scheme-sniffing helper (no
// net/url involved — a relative markdown path is never a valid URL to
// begin with, so url.Parse would just accept it silently).
func isAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") ||
		strings.HasPrefix(u, "https://") ||
		strings.HasPrefix(u, "ftp://") ||
		strings.HasPrefix(u, "//") ||
		strings.HasPrefix(u, "data:") ||
		strings.Contains(u, "://")
}

func brokenRelativeURL(u string) (reason string, broken bool) {
	if u == "" {
		return "empty destination", true
	}
	if strings.TrimSpace(u) == "" {
		return "whitespace-only destination", true
	}
	if strings.ContainsAny(u, " \t\n<>") {
		return "contains unescaped whitespace or angle brackets", true
	}
	if u == "#" {
		return "fragment-only destination", true
	}
	return "", false
}

func checkEmptyTableHeaders(doc *dast.Node) []Diagnostic {
	var diags []Diagnostic
	for _, table := range dast.FindByKind(doc, dast.NodeTable) {
		header := table.FirstChild
		if header == nil || header.Kind != dast.NodeTableRow {
			continue
		}
		for _, cell := range dast.FindByKind(header, dast.NodeTableCell) {
			if cellIsEmpty(cell) {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Span:     cell.Span,
					Message:  "table header cell is empty",
				})
			}
		}
	}
	return diags
}

// cellIsEmpty works whether or not the inline pass has already run on
// this cell: before it, the raw text still sits in the cell's own
// AttrTextContent (pkg/blockparser's buildTableRow sets it there without
// a Text child); after it, the content lives in Text children instead.
func cellIsEmpty(cell *dast.Node) bool {
	if cell.FirstChild == nil {
		return strings.TrimSpace(cell.Str(dast.AttrTextContent)) == ""
	}
	for c := cell.FirstChild; c != nil; c = c.Next {
		if c.Kind == dast.NodeText && strings.TrimSpace(c.Str(dast.AttrTextContent)) != "" {
			return false
		}
		if c.Kind != dast.NodeText {
			return false
		}
	}
	return true
}

// checkNonMonotonicListStarts flags an ordered list whose item marker
// numbers don't stay non-decreasing from one item to the next. Each
// item's own marker value is recorded on the ListItem node (see
// pkg/blockparser's list.go) precisely so this check has something to
// compare — CommonMark itself only cares about the first item's number.
func checkNonMonotonicListStarts(doc *dast.Node) []Diagnostic {
	var diags []Diagnostic
	for _, list := range dast.FindByKind(doc, dast.NodeList) {
		if !list.BoolAttrVal(dast.AttrListOrdered) {
			continue
		}
		var prev int64
		havePrev := false
		for item := list.FirstChild; item != nil; item = item.Next {
			if item.Kind != dast.NodeListItem {
				continue
			}
			n, ok := item.Attrs[dast.AttrListStart]
			if !ok || n.Kind != dast.AttrInt {
				continue
			}
			cur := n.Int
			if havePrev && cur < prev {
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Span:     item.Span,
					Message:  fmt.Sprintf("ordered list item number %d follows %d non-monotonically", cur, prev),
				})
			}
			prev, havePrev = cur, true
		}
	}
	return diags
}

// foldLabel normalizes a footnote/reference label the same
// case-insensitive, whitespace-collapsed way pkg/inlineparser resolves
// reference-style links, so a validator lookup never disagrees with what
// the parser itself already matched.
func foldLabel(label string) string {
	fields := strings.Fields(label)
	return strings.ToLower(strings.Join(fields, " "))
}
