package dast

import "github.com/bukvar/bukvar/pkg/rangeset"

// AttrKind tags the payload carried by an Attr, mirroring the binary
// codec's AttrVal variant (spec.md §4.7: 0=str, 1=i64, 2=bool, 3=range_list).
type AttrKind uint8

const (
	AttrString AttrKind = iota
	AttrInt
	AttrBool
	AttrRangeList
)

// Attr is a single attribute value. Exactly one field is meaningful,
// selected by Kind; this mirrors the tagged AttrVal the binary codec
// writes, so encode/decode never needs a type switch over `any`.
type Attr struct {
	Kind   AttrKind
	Str    string
	Int    int64
	Bool   bool
	Ranges []rangeset.Range
}

func StringAttr(s string) Attr           { return Attr{Kind: AttrString, Str: s} }
func IntAttr(v int64) Attr               { return Attr{Kind: AttrInt, Int: v} }
func BoolAttr(b bool) Attr               { return Attr{Kind: AttrBool, Bool: b} }
func RangeListAttr(r []rangeset.Range) Attr { return Attr{Kind: AttrRangeList, Ranges: r} }

// Set stores an attribute, initializing the map on first use.
func (n *Node) Set(key string, a Attr) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]Attr)
	}
	n.Attrs[key] = a
}

// SetString is shorthand for Set(key, StringAttr(s)).
func (n *Node) SetString(key, s string) { n.Set(key, StringAttr(s)) }

// SetInt is shorthand for Set(key, IntAttr(v)).
func (n *Node) SetInt(key string, v int64) { n.Set(key, IntAttr(v)) }

// SetBool is shorthand for Set(key, BoolAttr(b)).
func (n *Node) SetBool(key string, b bool) { n.Set(key, BoolAttr(b)) }

// SetRanges is shorthand for Set(key, RangeListAttr(r)).
func (n *Node) SetRanges(key string, r []rangeset.Range) { n.Set(key, RangeListAttr(r)) }

// Str returns the string attribute at key, or "" if absent or of a
// different kind.
func (n *Node) Str(key string) string {
	if a, ok := n.Attrs[key]; ok && a.Kind == AttrString {
		return a.Str
	}
	return ""
}

// IntAttrVal returns the integer attribute at key, or 0 if absent.
func (n *Node) IntAttrVal(key string) int64 {
	if a, ok := n.Attrs[key]; ok && a.Kind == AttrInt {
		return a.Int
	}
	return 0
}

// BoolAttrVal returns the boolean attribute at key, or false if absent.
func (n *Node) BoolAttrVal(key string) bool {
	if a, ok := n.Attrs[key]; ok && a.Kind == AttrBool {
		return a.Bool
	}
	return false
}

// RangesAttrVal returns the range-list attribute at key, or nil if absent.
func (n *Node) RangesAttrVal(key string) []rangeset.Range {
	if a, ok := n.Attrs[key]; ok && a.Kind == AttrRangeList {
		return a.Ranges
	}
	return nil
}

// Well-known attribute keys, shared by the block/inline parsers, the
// validator, and both encoders so none of them stringifies ad hoc.
const (
	AttrHeadingLevel = "level"
	AttrHeadingID    = "id"

	AttrAlertKind = "alertKind" // NOTE|TIP|IMPORTANT|WARNING|CAUTION

	AttrListOrdered = "ordered"
	AttrListStart   = "start"
	AttrListTight   = "tight"
	AttrListBullet  = "bullet"
	AttrListDelim   = "delim"

	AttrTaskState = "task" // "none"|"unchecked"|"checked"

	AttrTableAlign = "align" // comma-joined per-column: left|center|right|none

	AttrCodeLang      = "lang"
	AttrCodeCanonLang = "canonLang"
	AttrCodeHighlight = "highlight"
	AttrCodePlusDiff  = "plusDiff"
	AttrCodeMinusDiff = "minusDiff"
	AttrCodeLineNums  = "lineNumbers"
	AttrCodeContent   = "content"

	AttrHTMLRaw = "raw"

	AttrFootnoteLabel = "label"

	AttrContainerKind = "kind" // steps|tabs|toc
	AttrContainerAttr = "attr:" // prefix for container name->value pairs

	AttrTextContent = "text"

	AttrLinkURL   = "url"
	AttrLinkTitle = "title"

	AttrDocTagName = "name"
	AttrDocTagType = "type"
	AttrDocTagIdent = "ident"
)

// TaskState enumerates ListItem task-marker states (spec.md §3).
type TaskState string

const (
	TaskNone      TaskState = "none"
	TaskUnchecked TaskState = "unchecked"
	TaskChecked   TaskState = "checked"
)

// Align enumerates table column alignment (spec.md §3).
type Align string

const (
	AlignNone   Align = "none"
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)
