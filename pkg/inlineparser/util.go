package inlineparser

import "github.com/bukvar/bukvar/pkg/span"

func span2end(start, end int) span.Span {
	return span.Span{Start: start, End: end}
}
