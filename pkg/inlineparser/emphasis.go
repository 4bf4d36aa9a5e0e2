package inlineparser

import "github.com/bukvar/bukvar/pkg/dast"

// resolveEmphasis pairs delimiter-run events left to right: each closer
// is matched against the nearest preceding opener of the same
// character, consuming 2 delimiter characters per side for Strong (and
// Strikethrough, which only ever matches as a pair) and 1 for Emphasis.
// Unmatched delimiter runs fall through to finalize() as literal text.
func (p *parser) resolveEmphasis(events []event) []event {
	var stack []int

	for i := 0; i < len(events); i++ {
		e := events[i]
		if e.kind != eDelim || e.delimLen <= 0 {
			continue
		}
		// A tilde run shorter than 2 can never form "~~" strikethrough
		// (spec.md §4.4 defines no single-tilde form); this also catches
		// the 1-wide remainder wrapDelimRange can leave behind after
		// consuming 2 characters from a longer run, the same way scan()
		// already refuses to emit a lone '~' as a delimiter event at all.
		if e.delimChar == '~' && e.delimLen < 2 {
			continue
		}
		if e.canClose {
			matched := matchOpener(events, stack, i)
			if matched >= 0 {
				events = p.wrapDelimRange(events, matched, i)
				// wrapDelimRange may have shortened the slice; rebuild the
				// stack conservatively by dropping entries past the wrap.
				for len(stack) > 0 && stack[len(stack)-1] >= matched {
					stack = stack[:len(stack)-1]
				}
				i = matched
				if events[i].delimLen > 0 {
					stack = append(stack, i)
				}
				continue
			}
		}
		if e.canOpen {
			stack = append(stack, i)
		}
	}
	return events
}

// matchOpener finds the nearest open delimiter on the stack whose
// character matches events[closeIdx] and that still has length left.
func matchOpener(events []event, stack []int, closeIdx int) int {
	closer := events[closeIdx]
	for k := len(stack) - 1; k >= 0; k-- {
		idx := stack[k]
		o := events[idx]
		if o.kind == eDelim && o.delimChar == closer.delimChar && o.delimLen > 0 {
			return idx
		}
	}
	return -1
}

// wrapDelimRange wraps events[openIdx+1:closeIdx] in an Emphasis,
// Strong, or Strikethrough node, consuming delimiter characters from
// both ends, and returns the updated event slice with the wrapped range
// collapsed to a single eNode event.
func (p *parser) wrapDelimRange(events []event, openIdx, closeIdx int) []event {
	open, close := events[openIdx], events[closeIdx]
	use := minI(open.delimLen, close.delimLen)
	char := open.delimChar

	var kind dast.NodeKind
	switch {
	case char == '~':
		use = minI(use, 2)
		kind = dast.NodeStrikethrough
	case use >= 2:
		use = 2
		kind = dast.NodeStrong
	default:
		use = 1
		kind = dast.NodeEmphasis
	}

	inner := append([]event{}, events[openIdx+1:closeIdx]...)
	children := p.finalize(p.resolveEmphasis(inner))

	wrapped := dast.New(kind)
	wrapped.Span = p.sp(open.end-use, close.start+use)
	for _, c := range children {
		dast.AppendChild(wrapped, c)
	}

	newOpenLen := open.delimLen - use
	newCloseLen := close.delimLen - use

	var out []event
	out = append(out, events[:openIdx]...)
	if newOpenLen > 0 {
		out = append(out, event{kind: eDelim, delimChar: char, delimLen: newOpenLen, canOpen: open.canOpen, canClose: open.canClose, start: open.start, end: open.start + newOpenLen})
	}
	out = append(out, event{kind: eNode, node: wrapped})
	if newCloseLen > 0 {
		out = append(out, event{kind: eDelim, delimChar: char, delimLen: newCloseLen, canOpen: close.canOpen, canClose: close.canClose, start: close.end - newCloseLen, end: close.end})
	}
	out = append(out, events[closeIdx+1:]...)
	return out
}
