package inlineparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// scanMathInline matches "$...$" with no leading/trailing space inside
// and no digit immediately following the closing '$' (so "$5 each" and
// "price is $5" aren't mistaken for math).
func (p *parser) scanMathInline(i, end int) (*dast.Node, int) {
	src := p.src
	if i+1 >= end || src[i+1] == ' ' || src[i+1] == '$' {
		return nil, i
	}
	j := i + 1
	for j < end {
		if src[j] == '\\' {
			j += 2
			continue
		}
		if src[j] == '$' {
			break
		}
		if src[j] == '\n' {
			return nil, i
		}
		j++
	}
	if j >= end || j == i+1 {
		return nil, i
	}
	if src[j-1] == ' ' {
		return nil, i
	}
	if j+1 < end && src[j+1] >= '0' && src[j+1] <= '9' {
		return nil, i
	}
	content := src[i+1 : j]
	n := dast.New(dast.NodeMathInline)
	n.SetString(dast.AttrCodeContent, content)
	n.Span = p.sp(i, j+1)
	return n, j + 1
}

// scanFootnoteRef matches "[^label]" at i (caller has already checked
// the "[^" prefix).
func (p *parser) scanFootnoteRef(i, end int) (*dast.Node, int) {
	src := p.src
	close := strings.IndexByte(src[i:end], ']')
	if close < 0 {
		return nil, i
	}
	label := src[i+2 : i+close]
	if label == "" {
		return nil, i
	}
	n := dast.New(dast.NodeFootnoteRef)
	n.SetString(dast.AttrFootnoteLabel, label)
	n.Span = p.sp(i, i+close+1)
	return n, i + close + 1
}
