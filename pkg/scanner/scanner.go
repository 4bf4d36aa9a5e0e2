// Package scanner implements a byte-level cursor with bounded lookahead
// over a source buffer (spec.md §4.1). It never validates UTF-8, so
// scanning can never fail on arbitrary bytes; SanitizeUTF8 converts bytes
// to well-formed text for a caller that wants it. No other Bukvar package
// imports this one: pkg/blockparser and pkg/inlineparser scan their input
// directly.
package scanner

import "github.com/bukvar/bukvar/pkg/span"

// Scanner is a forward-only byte cursor with bounded lookahead over a
// fixed buffer. It tracks line/column position incrementally so callers
// don't need to re-derive it from a LineIndex on every step.
type Scanner struct {
	content   []byte
	offset    int
	lineStart int
	line      int // 1-based
}

// New creates a Scanner positioned at the start of content.
func New(content []byte) *Scanner {
	return &Scanner{content: content, line: 1}
}

// Offset returns the current byte offset.
func (s *Scanner) Offset() int { return s.offset }

// Len returns the total length of the source buffer.
func (s *Scanner) Len() int { return len(s.content) }

// Eof reports whether the cursor has reached the end of the buffer.
func (s *Scanner) Eof() bool { return s.offset >= len(s.content) }

// Bol reports whether the cursor is at the start of a line.
func (s *Scanner) Bol() bool { return s.offset == s.lineStart }

// Peek returns the byte k positions ahead of the cursor (k=0 is the
// current byte), or 0 if that position is out of range.
func (s *Scanner) Peek(k int) byte {
	i := s.offset + k
	if i < 0 || i >= len(s.content) {
		return 0
	}
	return s.content[i]
}

// PeekSlice returns up to n bytes starting at the cursor without
// advancing it.
func (s *Scanner) PeekSlice(n int) []byte {
	end := s.offset + n
	if end > len(s.content) {
		end = len(s.content)
	}
	if end <= s.offset {
		return nil
	}
	return s.content[s.offset:end]
}

// Remaining returns every byte from the cursor to the end of the buffer.
func (s *Scanner) Remaining() []byte {
	return s.content[s.offset:]
}

// Advance moves the cursor forward n bytes, updating line tracking as it
// crosses newlines. Advancing past EOF clamps to EOF.
func (s *Scanner) Advance(n int) {
	end := s.offset + n
	if end > len(s.content) {
		end = len(s.content)
	}
	for s.offset < end {
		c := s.content[s.offset]
		s.offset++
		if c == '\n' {
			s.line++
			s.lineStart = s.offset
		}
	}
}

// ReadLine consumes and returns the current line including its trailing
// newline ("\n", "\r\n", or "\r"), or the remaining bytes if the buffer
// ends without a terminator. Returns nil at EOF.
func (s *Scanner) ReadLine() []byte {
	if s.Eof() {
		return nil
	}
	start := s.offset
	for !s.Eof() {
		c := s.Peek(0)
		if c == '\n' {
			s.Advance(1)
			break
		}
		if c == '\r' {
			s.Advance(1)
			if s.Peek(0) == '\n' {
				s.Advance(1)
			}
			break
		}
		s.Advance(1)
	}
	return s.content[start:s.offset]
}

// PeekLine returns the current line including its terminator, without
// advancing the cursor. Used for one-line-of-lookahead decisions (Setext
// heading promotion, list/paragraph continuation).
func (s *Scanner) PeekLine() []byte {
	save := *s
	line := s.ReadLine()
	*s = save
	return line
}

// Position returns the current 1-based line and column.
func (s *Scanner) Position() span.Position {
	return span.Position{Line: s.line, Column: s.offset - s.lineStart + 1}
}

// Span returns a span.Span from start to the scanner's current offset.
func (s *Scanner) Span(start int) span.Span {
	return span.Span{Start: start, End: s.offset}
}

// Content returns the full underlying source buffer.
func (s *Scanner) Content() []byte {
	return s.content
}
