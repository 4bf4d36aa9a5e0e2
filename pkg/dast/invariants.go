package dast

import "fmt"

// CheckSpanMonotonicity verifies spec.md §8 property 1: every node's span
// has Start <= End, and every child's span is contained in its parent's.
// It returns the first violation found, or nil if the tree is well-formed.
func CheckSpanMonotonicity(root *Node) error {
	return Walk(root, func(n *Node) error {
		if n.Span.Start > n.Span.End {
			return fmt.Errorf("dast: node %s has inverted span [%d,%d)", n.Kind, n.Span.Start, n.Span.End)
		}
		for c := n.FirstChild; c != nil; c = c.Next {
			if !n.Span.ContainsSpan(c.Span) {
				return fmt.Errorf("dast: child %s span [%d,%d) escapes parent %s span [%d,%d)",
					c.Kind, c.Span.Start, c.Span.End, n.Kind, n.Span.Start, n.Span.End)
			}
		}
		return nil
	})
}

// Equal reports whether two trees are structurally identical: same kind,
// span, attributes, and children in order. Used by the binary codec's
// round-trip tests (spec.md §8 property 2).
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Span != b.Span {
		return false
	}
	if !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}
	ac, bc := a.FirstChild, b.FirstChild
	for ac != nil && bc != nil {
		if !Equal(ac, bc) {
			return false
		}
		ac, bc = ac.Next, bc.Next
	}
	return ac == nil && bc == nil
}

func attrsEqual(a, b map[string]Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || av.Kind != bv.Kind {
			return false
		}
		switch av.Kind {
		case AttrString:
			if av.Str != bv.Str {
				return false
			}
		case AttrInt:
			if av.Int != bv.Int {
				return false
			}
		case AttrBool:
			if av.Bool != bv.Bool {
				return false
			}
		case AttrRangeList:
			if len(av.Ranges) != len(bv.Ranges) {
				return false
			}
			for i := range av.Ranges {
				if av.Ranges[i] != bv.Ranges[i] {
					return false
				}
			}
		}
	}
	return true
}
