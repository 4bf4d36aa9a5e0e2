package blockparser

import "github.com/bukvar/bukvar/pkg/span"

func span2(start, end int) span.Span {
	return span.Span{Start: start, End: end}
}
