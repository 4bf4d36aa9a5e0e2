package blockparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// htmlBlockTags is the set of block-level HTML tag names that open an
// HtmlBlock when found at the start of a line (a coarse approximation of
// CommonMark's type-6 HTML block start condition, sufficient for the raw
// "pass it through untouched" treatment spec.md §4.3 asks for).
var htmlBlockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"blockquote": true, "body": true, "caption": true, "center": true,
	"col": true, "colgroup": true, "dd": true, "details": true, "dialog": true,
	"dir": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true,
	"optgroup": true, "option": true, "p": true, "param": true,
	"section": true, "source": true, "summary": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true,
}

// tryHTMLBlock recognizes a raw HTML block opened by a known block-level
// tag, or by an HTML comment, and consumes lines through the first blank
// line (or EOF), preserving everything between verbatim.
func tryHTMLBlock(lines []Line) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	if leadingSpaces(l.Raw) > 3 {
		return nil, 0
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if !strings.HasPrefix(trimmed, "<") {
		return nil, 0
	}
	if strings.HasPrefix(trimmed, "<!--") {
		return consumeHTMLBlock(lines)
	}
	tagBody := strings.TrimPrefix(trimmed, "<")
	tagBody = strings.TrimPrefix(tagBody, "/")
	name := scanTagName(tagBody)
	if name == "" || !htmlBlockTags[strings.ToLower(name)] {
		return nil, 0
	}
	return consumeHTMLBlock(lines)
}

func scanTagName(s string) string {
	i := 0
	for i < len(s) && (isAlnum(s[i])) {
		i++
	}
	return s[:i]
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func consumeHTMLBlock(lines []Line) (*dast.Node, int) {
	i := 0
	var body []Line
	for i < len(lines) {
		if i > 0 && lines[i].IsBlank() {
			break
		}
		body = append(body, lines[i])
		i++
	}
	n := dast.New(dast.NodeHtmlBlock)
	n.SetString(dast.AttrHTMLRaw, string(joinedText(body)))
	n.Span = joinedSpan(body)
	return n, i
}
