package blockparser

import "github.com/bukvar/bukvar/pkg/span"

// Line is one physical source line with its terminator stripped, keeping
// the absolute byte offsets of its content so spans stay correct even
// after a container (blockquote, list item) strips a leading prefix.
type Line struct {
	Raw   []byte
	Start int
	End   int // Start + len(Raw)
}

// Span returns the byte span covered by the line's content.
func (l Line) Span() span.Span {
	return span.Span{Start: l.Start, End: l.End}
}

// IsBlank reports whether the line is empty or all whitespace.
func (l Line) IsBlank() bool {
	for _, c := range l.Raw {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// splitLines breaks content into Line values, normalizing "\r\n"/"\n"/"\r"
// terminators uniformly while recording absolute content offsets.
func splitLines(content []byte) []Line {
	var lines []Line
	start := 0
	i := 0
	for i < len(content) {
		c := content[i]
		switch c {
		case '\n':
			lines = append(lines, Line{Raw: content[start:i], Start: start, End: i})
			i++
			start = i
		case '\r':
			end := i
			lines = append(lines, Line{Raw: content[start:end], Start: start, End: end})
			i++
			if i < len(content) && content[i] == '\n' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	if start < len(content) || len(lines) == 0 {
		lines = append(lines, Line{Raw: content[start:], Start: start, End: len(content)})
	}
	return lines
}

// joinedSpan returns the union span of a contiguous run of lines.
func joinedSpan(lines []Line) span.Span {
	if len(lines) == 0 {
		return span.Span{}
	}
	return span.Span{Start: lines[0].Start, End: lines[len(lines)-1].End}
}

// joinedText joins line contents with "\n", matching the textual form
// downstream inline parsing expects.
func joinedText(lines []Line) []byte {
	out := make([]byte, 0, joinedSpan(lines).Len())
	for i, l := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, l.Raw...)
	}
	return out
}

// joinedTextTerminated is joinedText plus a trailing newline after the
// last line, matching the scanner's own line terminator handling
// ("preserves the original bytes in raw code-block content" per
// spec.md's Scanner section): every consumed line, including the last,
// contributed a newline in the source.
func joinedTextTerminated(lines []Line) []byte {
	if len(lines) == 0 {
		return nil
	}
	out := joinedText(lines)
	out = append(out, '\n')
	return out
}

// stripPrefix removes up to n bytes from the front of a line's Raw,
// preserving the absolute Start offset of the remaining content.
func stripPrefix(l Line, n int) Line {
	if n > len(l.Raw) {
		n = len(l.Raw)
	}
	return Line{Raw: l.Raw[n:], Start: l.Start + n, End: l.End}
}

// leadingSpaces returns the number of leading space/tab bytes, expanding
// tabs to the next multiple of 4 for indentation-width purposes.
func leadingSpaces(raw []byte) int {
	n := 0
	for _, c := range raw {
		switch c {
		case ' ':
			n++
		case '\t':
			n += 4 - (n % 4)
		default:
			return n
		}
	}
	return n
}
