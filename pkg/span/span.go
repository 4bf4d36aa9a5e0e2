// Package span tracks byte offsets and line/column positions into a source
// buffer. Every Bukvar node carries a Span; this package is the one place
// that turns a byte offset into a human-readable position.
package span

import "sort"

// Span is a byte range into an original source buffer: [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset falls within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Union returns the smallest span containing both s and other.
func (s Span) Union(other Span) Span {
	u := s
	if other.Start < u.Start {
		u.Start = other.Start
	}
	if other.End > u.End {
		u.End = other.End
	}
	return u
}

// ContainsSpan reports whether s fully contains other.
func (s Span) ContainsSpan(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether both fields are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// LineInfo holds metadata for a single physical line of source.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int
	// NewlineStart is the byte index where the line terminator begins
	// (equal to EndOffset for a final line with no trailing newline).
	NewlineStart int
	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// LineIndex supports O(log n) offset-to-line/column lookups over a fixed
// source buffer. Construct one with BuildLineIndex.
type LineIndex struct {
	content []byte
	lines   []LineInfo
}

// BuildLineIndex scans content once and records line boundaries, treating
// "\r\n", "\n", and lone "\r" uniformly as a single line terminator.
func BuildLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{content: content}
	if len(content) == 0 {
		idx.lines = []LineInfo{}
		return idx
	}

	lineStart := 0
	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case c == '\n':
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: i, EndOffset: i + 1})
			i++
			lineStart = i
		case c == '\r':
			end := i + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: i, EndOffset: end})
			i = end
			lineStart = i
		default:
			i++
		}
	}
	if lineStart < len(content) {
		idx.lines = append(idx.lines, LineInfo{StartOffset: lineStart, NewlineStart: len(content), EndOffset: len(content)})
	}
	return idx
}

// LineCount returns the number of physical lines.
func (idx *LineIndex) LineCount() int {
	return len(idx.lines)
}

// PositionAt converts a byte offset to a 1-based Position. Returns the
// zero Position if offset is out of range.
func (idx *LineIndex) PositionAt(offset int) Position {
	if offset < 0 || offset > len(idx.content) || len(idx.lines) == 0 {
		return Position{}
	}

	if offset >= len(idx.content) {
		last := idx.lines[len(idx.lines)-1]
		return Position{Line: len(idx.lines), Column: offset - last.StartOffset + 1}
	}

	lineIdx := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if lineIdx >= len(idx.lines) {
		lineIdx = len(idx.lines) - 1
	}
	line := idx.lines[lineIdx]
	if offset < line.StartOffset {
		return Position{}
	}
	return Position{Line: lineIdx + 1, Column: offset - line.StartOffset + 1}
}

// Offset converts a 1-based line/column back to a byte offset.
func (idx *LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(idx.lines) || col < 1 {
		return 0, false
	}
	info := idx.lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns the bytes of a 1-based line, excluding the
// terminator. Returns nil for an out-of-range line.
func (idx *LineIndex) LineContent(line int) []byte {
	if line < 1 || line > len(idx.lines) {
		return nil
	}
	info := idx.lines[line-1]
	return idx.content[info.StartOffset:info.NewlineStart]
}

// SpanPosition returns the start/end Position pair for a Span.
func (idx *LineIndex) SpanPosition(s Span) (start, end Position) {
	return idx.PositionAt(s.Start), idx.PositionAt(s.End)
}
