package inlineparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// scanCodeSpan matches a run of backticks opening a code span, and the
// first run of the same length that closes it. Per GFM, if the content
// both starts and ends with a space (and isn't all spaces), exactly one
// leading and trailing space is stripped.
func (p *parser) scanCodeSpan(i, end int) (*dast.Node, int) {
	src := p.src
	openLen := 1
	for i+openLen < end && src[i+openLen] == '`' {
		openLen++
	}
	searchFrom := i + openLen
	for j := searchFrom; j < end; {
		if src[j] != '`' {
			j++
			continue
		}
		closeLen := 1
		for j+closeLen < end && src[j+closeLen] == '`' {
			closeLen++
		}
		if closeLen == openLen {
			content := src[searchFrom:j]
			content = stripCodeSpanPadding(content)
			n := dast.New(dast.NodeCode)
			n.SetString(dast.AttrCodeContent, content)
			n.Span = p.sp(i, j+closeLen)
			return n, j + closeLen
		}
		j += closeLen
	}
	return nil, i
}

func stripCodeSpanPadding(s string) string {
	if len(s) < 2 {
		return s
	}
	if s[0] == ' ' && s[len(s)-1] == ' ' && strings.TrimSpace(s) != "" {
		return s[1 : len(s)-1]
	}
	return s
}
