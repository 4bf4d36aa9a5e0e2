package blockparser

import (
	"strconv"
	"strings"

	"github.com/bukvar/bukvar/pkg/dast"
	"github.com/bukvar/bukvar/pkg/langalias"
	"github.com/bukvar/bukvar/pkg/rangeset"
)

// tryFencedCode recognizes a ``` or ~~~ fence, consuming lines through
// its matching close (same character, length >= opening run, or EOF).
// The info string after the opening fence carries the language tag plus
// attribute tokens ("highlight=1,3-5", "plusdiff=...", "minusdiff=...",
// "linenumbers").
func tryFencedCode(lines []Line) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	indent := leadingSpaces(l.Raw)
	if indent > 3 {
		return nil, 0
	}
	trimmed := strings.TrimLeft(string(l.Raw), " \t")
	if len(trimmed) < 3 {
		return nil, 0
	}
	fenceChar := trimmed[0]
	if fenceChar != '`' && fenceChar != '~' {
		return nil, 0
	}
	runLen := 0
	for runLen < len(trimmed) && trimmed[runLen] == fenceChar {
		runLen++
	}
	if runLen < 3 {
		return nil, 0
	}
	info := strings.TrimSpace(trimmed[runLen:])
	if fenceChar == '`' && strings.ContainsRune(info, '`') {
		return nil, 0
	}

	n := dast.New(dast.NodeCodeBlock)
	lang, attrs := parseFenceInfo(info)
	if lang != "" {
		n.SetString(dast.AttrCodeLang, lang)
		n.SetString(dast.AttrCodeCanonLang, langalias.Canonical(lang))
	}
	applyFenceAttrs(n, attrs)

	i := 1
	var body []Line
	for i < len(lines) {
		cur := lines[i]
		curTrim := strings.TrimLeft(string(cur.Raw), " \t")
		if leadingSpaces(cur.Raw) <= 3 {
			closeRun := 0
			for closeRun < len(curTrim) && curTrim[closeRun] == fenceChar {
				closeRun++
			}
			if closeRun >= runLen && strings.TrimSpace(curTrim[closeRun:]) == "" {
				i++
				break
			}
		}
		body = append(body, cur)
		i++
	}
	n.SetString(dast.AttrCodeContent, string(joinedTextTerminated(body)))
	if len(body) > 0 {
		n.Span = span2(l.Start, body[len(body)-1].End)
	} else {
		n.Span = l.Span()
	}
	if i <= len(lines) {
		// extend span through the closing fence line if one was consumed
		if i-1 < len(lines) && i-1 >= 1 {
			n.Span = span2(n.Span.Start, lines[i-1].End)
		}
	}
	return n, i
}

// parseFenceInfo splits a fence info string into the leading language
// tag and the remaining "key=value" / bare-flag attribute tokens. Quoted
// values ("highlight=\"2, 4-5\"") are kept whole rather than split on
// their interior spaces.
func parseFenceInfo(info string) (string, []string) {
	fields := splitFenceTokens(info)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// splitFenceTokens is strings.Fields, quote-aware: a space inside a
// double-quoted span does not end the current token, so
// `highlight="2, 4-5"` stays one token instead of splitting into
// `highlight="2,` and `4-5"`.
func splitFenceTokens(info string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range info {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// unquote strips a single pair of surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func applyFenceAttrs(n *dast.Node, tokens []string) {
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "highlight="):
			n.SetRanges(dast.AttrCodeHighlight, rangeset.Normalize(rangeset.Parse(unquote(tok[len("highlight="):]))))
		case strings.HasPrefix(tok, "plusdiff="):
			n.SetRanges(dast.AttrCodePlusDiff, rangeset.Normalize(rangeset.Parse(unquote(tok[len("plusdiff="):]))))
		case strings.HasPrefix(tok, "minusdiff="):
			n.SetRanges(dast.AttrCodeMinusDiff, rangeset.Normalize(rangeset.Parse(unquote(tok[len("minusdiff="):]))))
		case tok == "linenumbers":
			n.SetBool(dast.AttrCodeLineNums, true)
		case strings.HasPrefix(tok, "linenumbers="):
			if v, err := strconv.ParseBool(unquote(tok[len("linenumbers="):])); err == nil {
				n.SetBool(dast.AttrCodeLineNums, v)
			}
		}
	}
}

// tryMathFence recognizes a "$$" ... "$$" block math fence.
func tryMathFence(lines []Line) (*dast.Node, int) {
	if len(lines) == 0 {
		return nil, 0
	}
	l := lines[0]
	if leadingSpaces(l.Raw) > 3 {
		return nil, 0
	}
	trimmed := strings.TrimSpace(string(l.Raw))
	if trimmed != "$$" {
		return nil, 0
	}
	i := 1
	var body []Line
	for i < len(lines) {
		if strings.TrimSpace(string(lines[i].Raw)) == "$$" {
			i++
			break
		}
		body = append(body, lines[i])
		i++
	}
	n := dast.New(dast.NodeMathBlock)
	n.SetString(dast.AttrCodeContent, string(joinedTextTerminated(body)))
	if len(body) > 0 {
		n.Span = span2(l.Start, body[len(body)-1].End)
	} else {
		n.Span = l.Span()
	}
	return n, i
}
