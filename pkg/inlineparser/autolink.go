package inlineparser

import (
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
)

// scanAngle handles everything that can start with '<': a "<scheme:...>"
// or "<user@host>" autolink, an HTML comment, or a generic raw HTML tag.
// Returns nil if none match, leaving '<' as plain text.
func (p *parser) scanAngle(i, end int) (*dast.Node, int) {
	src := p.src
	if strings.HasPrefix(src[i:end], "<!--") {
		if close := strings.Index(src[i+4:end], "-->"); close >= 0 {
			stop := i + 4 + close + 3
			n := dast.New(dast.NodeRawHtml)
			n.SetString(dast.AttrHTMLRaw, src[i:stop])
			n.Span = p.sp(i, stop)
			return n, stop
		}
		return nil, i
	}

	close := strings.IndexByte(src[i:end], '>')
	if close < 0 {
		return nil, i
	}
	body := src[i+1 : i+close]
	if body == "" {
		return nil, i
	}

	if looksLikeAutolinkURL(body) || looksLikeAutolinkEmail(body) {
		n := dast.New(dast.NodeAutolink)
		n.SetString(dast.AttrLinkURL, autolinkHref(body))
		n.SetString(dast.AttrTextContent, body)
		n.Span = p.sp(i, i+close+1)
		return n, i + close + 1
	}

	if looksLikeHTMLTag(body) {
		n := dast.New(dast.NodeRawHtml)
		n.SetString(dast.AttrHTMLRaw, src[i:i+close+1])
		n.Span = p.sp(i, i+close+1)
		return n, i + close + 1
	}
	return nil, i
}

func looksLikeAutolinkURL(body string) bool {
	colon := strings.IndexByte(body, ':')
	if colon < 2 {
		return false
	}
	scheme := body[:colon]
	for _, c := range scheme {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			return false
		}
	}
	for _, c := range body {
		if c == ' ' || c == '\t' || c == '<' || c == '>' {
			return false
		}
	}
	return true
}

func looksLikeAutolinkEmail(body string) bool {
	at := strings.IndexByte(body, '@')
	if at <= 0 || at == len(body)-1 {
		return false
	}
	for _, c := range body {
		if c == ' ' || c == '\t' || c == '<' || c == '>' {
			return false
		}
	}
	return strings.Contains(body[at:], ".")
}

func autolinkHref(body string) string {
	if looksLikeAutolinkEmail(body) && !strings.Contains(body, ":") {
		return "mailto:" + body
	}
	return body
}

func looksLikeHTMLTag(body string) bool {
	b := strings.TrimPrefix(body, "/")
	b = strings.TrimSuffix(b, "/")
	if b == "" {
		return false
	}
	name := scanTagNameStr(b)
	return name != ""
}

func scanTagNameStr(s string) string {
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z' || s[i] >= '0' && s[i] <= '9') {
		i++
	}
	return s[:i]
}

// scanBareAutolink recognizes "http://", "https://", and "www." prefixes
// not preceded by a word character, extending the match to the next
// whitespace, then trimming trailing punctuation GFM excludes.
func (p *parser) scanBareAutolink(i, end int) (*dast.Node, int) {
	src := p.src
	if i > 0 && isWordByte(src[i-1]) {
		return nil, i
	}
	var prefixLen int
	switch {
	case strings.HasPrefix(src[i:end], "https://"):
		prefixLen = len("https://")
	case strings.HasPrefix(src[i:end], "http://"):
		prefixLen = len("http://")
	case strings.HasPrefix(src[i:end], "www."):
		prefixLen = len("www.")
	default:
		return nil, i
	}
	j := i + prefixLen
	for j < end && !isSpaceByte(src[j]) {
		j++
	}
	for j > i+prefixLen && strings.ContainsRune(".,;:!?)*_~'\"", rune(src[j-1])) {
		j--
	}
	if j <= i+prefixLen {
		return nil, i
	}
	url := src[i:j]
	href := url
	if strings.HasPrefix(url, "www.") {
		href = "http://" + url
	}
	n := dast.New(dast.NodeAutolink)
	n.SetString(dast.AttrLinkURL, href)
	n.SetString(dast.AttrTextContent, url)
	n.Span = p.sp(i, j)
	return n, j
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
