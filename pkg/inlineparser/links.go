package inlineparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// resolveBrackets walks the event stream resolving "]" against the
// nearest active "[" / "![" opener. A resolved pair becomes a Link or
// Image node (inline destination, full/collapsed reference, or
// shortcut reference against the document's link-definition table);
// an unresolved pair falls back to literal "[" / "]" text, with its
// interior left in the stream for the emphasis pass.
func (p *parser) resolveBrackets(events []event, rangeEnd int) []event {
	for {
		closeIdx := -1
		for i, e := range events {
			if e.kind == eBracketClose {
				closeIdx = i
				break
			}
		}
		if closeIdx < 0 {
			return events
		}

		openIdx := -1
		for k := closeIdx - 1; k >= 0; k-- {
			if events[k].kind == eBracketOpen && events[k].active {
				openIdx = k
				break
			}
		}
		if openIdx < 0 {
			// No opener at all: this ']' is plain text; demote and retry.
			events[closeIdx].kind = eNode
			events[closeIdx].node = p.textNode("]", events[closeIdx].start, events[closeIdx].end)
			continue
		}

		dest, title, label, isRef, consumedEnd, ok := p.matchLinkTail(events[closeIdx].end)
		var resolved bool
		var url, linkTitle string
		switch {
		case ok && isRef:
			refLabel := label
			if refLabel == "" {
				// collapsed reference "[]": the bracketed text is the label
				refLabel = p.src[events[openIdx].end:events[closeIdx].start]
			}
			if def, found := p.lookupLinkDef(refLabel); found {
				url, linkTitle, resolved = def.URL, def.Title, true
			} else {
				p.recordUnresolvedRef(refLabel, events[openIdx].isImage, events[openIdx].start, consumedEnd)
			}
		case ok:
			url, linkTitle, resolved = dest, title, true
		default:
			// shortcut reference: "[label]" with nothing following
			shortcut := p.src[events[openIdx].end:events[closeIdx].start]
			if def, found := p.lookupLinkDef(shortcut); found {
				url, linkTitle, resolved = def.URL, def.Title, true
				consumedEnd = events[closeIdx].end
			} else {
				p.recordUnresolvedRef(shortcut, events[openIdx].isImage, events[openIdx].start, events[closeIdx].end)
			}
		}

		if !resolved {
			events[openIdx].kind = eNode
			events[openIdx].node = p.textNode(bracketMarker(events[openIdx].isImage), events[openIdx].start, events[openIdx].end)
			events[closeIdx].kind = eNode
			events[closeIdx].node = p.textNode("]", events[closeIdx].start, events[closeIdx].end)
			continue
		}

		if events[openIdx].isImage {
			// Images cannot contain further links/images; deactivate any
			// opener events between them so they fall back to text.
			for k := openIdx + 1; k < closeIdx; k++ {
				if events[k].kind == eBracketOpen {
					events[k].active = false
				}
			}
		} else {
			for k := openIdx - 1; k >= 0; k-- {
				if events[k].kind == eBracketOpen {
					events[k].active = false
				}
			}
		}

		labelEnd := events[closeIdx].start
		inner := append([]event{}, events[openIdx+1:closeIdx]...)
		children := p.finalize(p.resolveEmphasis(p.resolveBrackets(inner, labelEnd)))

		var n *dast.Node
		if events[openIdx].isImage {
			n = dast.New(dast.NodeImage)
			n.SetString(dast.AttrTextContent, plainText(children))
		} else {
			n = dast.New(dast.NodeLink)
			for _, c := range children {
				dast.AppendChild(n, c)
			}
		}
		n.SetString(dast.AttrLinkURL, url)
		n.SetString(dast.AttrLinkTitle, linkTitle)
		n.Span = p.sp(events[openIdx].start, consumedEnd)

		// Everything from consumedEnd to rangeEnd is re-scanned fresh:
		// the destination/title/reference-label bytes between closeIdx
		// and consumedEnd were never meant to be tokenized as ordinary
		// inline content (the original scan pass ran over them blindly,
		// e.g. a bare "https://" inside a link destination), and any
		// trailing event may straddle the consumedEnd boundary.
		var out []event
		out = append(out, events[:openIdx]...)
		out = append(out, event{kind: eNode, node: n, start: events[openIdx].start, end: consumedEnd})
		out = append(out, p.scan(consumedEnd, rangeEnd)...)
		events = out
	}
}

// recordUnresolvedRef appends to the resolver's side table (if any); a
// nil resolver means ParseLeaf was called without document-wide context
// (some tests exercise a leaf in isolation) and there is nowhere to
// record it.
func (p *parser) recordUnresolvedRef(label string, isImage bool, start, end int) {
	if p.res == nil {
		return
	}
	p.res.UnresolvedRefs = append(p.res.UnresolvedRefs, UnresolvedRef{
		Label:   label,
		IsImage: isImage,
		Span:    p.sp(start, end),
	})
}

func bracketMarker(isImage bool) string {
	if isImage {
		return "!["
	}
	return "["
}

// plainText concatenates the text content of resolved image-alt children.
func plainText(nodes []*dast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case dast.NodeText, dast.NodeCode, dast.NodeAutolink:
			b.WriteString(n.Str(dast.AttrTextContent))
		default:
			for c := n.FirstChild; c != nil; c = c.Next {
				b.WriteString(plainText([]*dast.Node{c}))
			}
		}
	}
	return b.String()
}

// lookupLinkDef resolves a label (inline or reference form) against the
// document's link-definition table using case-insensitive, whitespace-
// collapsed comparison.
func (p *parser) lookupLinkDef(label string) (LinkDef, bool) {
	if p.res == nil {
		return LinkDef{}, false
	}
	def, ok := p.res.LinkDefs[foldLabel(label)]
	return def, ok
}

func foldLabel(label string) string {
	fields := strings.Fields(label)
	return strings.ToLower(strings.Join(fields, " "))
}

// matchLinkTail parses what follows a "]": either an inline destination
// "(url \"title\")", a full reference "[label]", or a collapsed
// reference "[]" (meaning: use the bracketed text as the label). Returns
// ok=false if neither form is present (a shortcut reference candidate).
func (p *parser) matchLinkTail(at int) (dest, title, label string, isRef bool, end int, ok bool) {
	src := p.src
	if at < len(src) && src[at] == '(' {
		j := at + 1
		for j < len(src) && (src[j] == ' ' || src[j] == '\t') {
			j++
		}
		destStart := j
		depth := 1
		closed := false
		for j < len(src) && !closed {
			switch src[j] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					closed = true
					continue
				}
			case '\n':
				return "", "", "", false, 0, false
			}
			j++
		}
		if !closed {
			return "", "", "", false, 0, false
		}
		raw := strings.TrimSpace(src[destStart:j])
		dest, title = splitDestTitle(raw)
		return dest, title, "", false, j + 1, true
	}
	if at < len(src) && src[at] == '[' {
		close := strings.IndexByte(src[at:], ']')
		if close < 0 {
			return "", "", "", false, 0, false
		}
		label = src[at+1 : at+close]
		return "", "", label, true, at + close + 1, true
	}
	return "", "", "", false, 0, false
}

func splitDestTitle(raw string) (dest, title string) {
	if raw == "" {
		return "", ""
	}
	if raw[0] == '<' {
		if end := strings.IndexByte(raw, '>'); end > 0 {
			dest = raw[1:end]
			title = scanLinkTitle(strings.TrimSpace(raw[end+1:]))
			return dest, title
		}
	}
	sp := strings.IndexAny(raw, " \t")
	if sp < 0 {
		return raw, ""
	}
	dest = raw[:sp]
	title = scanLinkTitle(strings.TrimSpace(raw[sp+1:]))
	return dest, title
}

func scanLinkTitle(s string) string {
	if len(s) >= 2 {
		open, close := s[0], s[len(s)-1]
		if (open == '"' && close == '"') || (open == '\'' && close == '\'') || (open == '(' && close == ')') {
			return s[1 : len(s)-1]
		}
	}
	return ""
}
