package inlineparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/span"
)

// parseInlines runs the full two-pass tokenization (scan, then bracket
// resolution, then emphasis pairing) over src[start:end] and returns the
// resulting inline-level children in document order.
func (p *parser) parseInlines(start, end int) []*dast.Node {
	events := p.scan(start, end)
	events = p.resolveBrackets(events, end)
	events = p.resolveEmphasis(events)
	return p.finalize(events)
}

// finalize drops any leftover unresolved delimiter/bracket markers back
// to literal text and returns the ordered node list.
func (p *parser) finalize(events []event) []*dast.Node {
	var out []*dast.Node
	for _, e := range events {
		switch e.kind {
		case eNode:
			out = append(out, e.node)
		case eDelim:
			out = append(out, p.textNode(strings.Repeat(string(e.delimChar), e.delimLen), e.start, e.end))
		case eBracketOpen:
			marker := "["
			if e.isImage {
				marker = "!["
			}
			out = append(out, p.textNode(marker, e.start, e.end))
		case eBracketClose:
			out = append(out, p.textNode("]", e.start, e.end))
		}
	}
	return mergeAdjacentText(out)
}

// mergeAdjacentText coalesces consecutive Text nodes produced by the
// finalize fallback paths so a run of literal characters isn't split
// into several sibling Text nodes.
func mergeAdjacentText(nodes []*dast.Node) []*dast.Node {
	var out []*dast.Node
	for _, n := range nodes {
		if len(out) > 0 && out[len(out)-1].Kind == dast.NodeText && n.Kind == dast.NodeText {
			prev := out[len(out)-1]
			prev.SetString(dast.AttrTextContent, prev.Str(dast.AttrTextContent)+n.Str(dast.AttrTextContent))
			prev.Span = span2end(prev.Span.Start, n.Span.End)
			continue
		}
		out = append(out, n)
	}
	return out
}

func (p *parser) textNode(s string, start, end int) *dast.Node {
	n := dast.New(dast.NodeText)
	n.SetString(dast.AttrTextContent, s)
	n.Span = p.sp(start, end)
	return n
}

// scan performs the single left-to-right tokenization pass, producing
// finished leaf nodes for constructs with no ambiguity (code spans,
// autolinks, raw HTML, footnote refs, math, breaks) and leaving
// delimiter runs and brackets as pending markers.
func (p *parser) scan(start, end int) []event {
	var events []event
	src := p.src
	i := start
	textStart := start

	flushText := func(upTo int) {
		if upTo > textStart {
			events = append(events, event{kind: eNode, node: p.textNode(src[textStart:upTo], textStart, upTo)})
		}
	}

	for i < end {
		c := src[i]
		switch {
		case c == '`':
			if n, next := p.scanCodeSpan(i, end); n != nil {
				flushText(i)
				events = append(events, event{kind: eNode, node: n})
				i = next
				textStart = i
				continue
			}
		case c == '<':
			if n, next := p.scanAngle(i, end); n != nil {
				flushText(i)
				events = append(events, event{kind: eNode, node: n})
				i = next
				textStart = i
				continue
			}
		case c == '$':
			if n, next := p.scanMathInline(i, end); n != nil {
				flushText(i)
				events = append(events, event{kind: eNode, node: n})
				i = next
				textStart = i
				continue
			}
		case c == '\\':
			if i+1 < end && isEscapable(src[i+1]) {
				flushText(i)
				events = append(events, event{kind: eNode, node: p.textNode(string(src[i+1]), i, i+2)})
				i += 2
				textStart = i
				continue
			}
			if i+1 < end && src[i+1] == '\n' {
				flushText(i)
				events = append(events, event{kind: eNode, node: newBreak(dast.NodeHardBreak, p.sp(i, i+2))})
				i += 2
				textStart = i
				continue
			}
		case c == '\n':
			flushText(i)
			hard := endsWithHardBreakSpaces(src, textStart, i)
			kind := dast.NodeSoftBreak
			if hard {
				kind = dast.NodeHardBreak
			}
			events = append(events, event{kind: eNode, node: newBreak(kind, p.sp(i, i+1))})
			i++
			textStart = i
			continue
		case c == '[':
			flushText(i)
			isImage := false
			openStart := i
			if i > start && src[i-1] == '!' {
				// the '!' was already emitted as part of the previous text
				// run; trim it back off and mark this bracket as an image.
				isImage, events = trimTrailingBang(events)
				if isImage {
					openStart = i - 1
				}
			}
			if !isImage && strings.HasPrefix(src[i:minI(end, i+2)], "[^") {
				if n, next := p.scanFootnoteRef(i, end); n != nil {
					events = append(events, event{kind: eNode, node: n})
					i = next
					textStart = i
					continue
				}
			}
			events = append(events, event{kind: eBracketOpen, isImage: isImage, active: true, start: openStart, end: i + 1})
			i++
			textStart = i
			continue
		case c == ']':
			flushText(i)
			events = append(events, event{kind: eBracketClose, start: i, end: i + 1})
			i++
			textStart = i
			continue
		case isDelimChar(c):
			run := 1
			for i+run < end && src[i+run] == c {
				run++
			}
			if c == '~' && run < 2 {
				i += run
				continue // lone '~' has no meaning, leave as plain text
			}
			flushText(i)
			before := byteBefore(src, i)
			after := byteAt(src, i+run, end)
			canOpen, canClose := flankingRule(c, before, after)
			events = append(events, event{kind: eDelim, delimChar: c, delimLen: run, canOpen: canOpen, canClose: canClose, start: i, end: i + run})
			i += run
			textStart = i
			continue
		case c == 'h' || c == 'w':
			if n, next := p.scanBareAutolink(i, end); n != nil {
				flushText(i)
				events = append(events, event{kind: eNode, node: n})
				i = next
				textStart = i
				continue
			}
		}
		i++
	}
	flushText(end)
	return events
}

func isEscapable(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

func isDelimChar(c byte) bool {
	return c == '*' || c == '_' || c == '~'
}

func minI(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func newBreak(kind dast.NodeKind, sp span.Span) *dast.Node {
	n := dast.New(kind)
	n.Span = sp
	return n
}

// trimTrailingBang removes a single trailing '!' byte from the most
// recently flushed text node, if present, returning true if it was
// found (meaning the upcoming bracket opens an Image, not a Link) along
// with the possibly-shortened event slice. If the text node's entire
// content was "!", the now-empty event is dropped rather than kept as a
// dangling empty Text node.
func trimTrailingBang(events []event) (bool, []event) {
	if len(events) == 0 {
		return false, events
	}
	last := events[len(events)-1]
	if last.kind != eNode || last.node == nil || last.node.Kind != dast.NodeText {
		return false, events
	}
	txt := last.node.Str(dast.AttrTextContent)
	if !strings.HasSuffix(txt, "!") {
		return false, events
	}
	remainder := txt[:len(txt)-1]
	if remainder == "" {
		return true, events[:len(events)-1]
	}
	last.node.SetString(dast.AttrTextContent, remainder)
	return true, events
}

func endsWithHardBreakSpaces(src string, from, to int) bool {
	trail := 0
	for to-1-trail >= from && src[to-1-trail] == ' ' {
		trail++
	}
	return trail >= 2
}

func byteBefore(src string, i int) byte {
	if i == 0 {
		return 0
	}
	return src[i-1]
}

func byteAt(src string, i, end int) byte {
	if i >= end {
		return 0
	}
	return src[i]
}
