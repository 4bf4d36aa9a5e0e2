package doccomment

import (
	"regexp"
	"strings"
)

// splitDescriptionAndTagsPy detects a PyDoc docstring's style (Google,
// NumPy, or Sphinx — spec.md §4.5) and dispatches to the matching
// section/directive parser. All three funnel into the same tagLine
// shape the JSDoc/JavaDoc path builds, so buildDocTag doesn't need to
// know which convention produced it.
func splitDescriptionAndTagsPy(lines []rawLine) (desc string, descStart int, tags []tagLine) {
	body := joinRawLines(lines)
	switch detectPyStyle(body) {
	case "numpy":
		return splitNumpy(lines)
	case "sphinx":
		return splitSphinx(lines)
	default:
		return splitGoogle(lines)
	}
}

func joinRawLines(lines []rawLine) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.text
	}
	return strings.Join(texts, "\n")
}

var googleHeaderRe = regexp.MustCompile(`^(Args|Arguments|Returns|Raises|Yields|Attributes|Examples|Note):$`)

// googleSectionTag maps a Google-style section header to the DocTag
// name its entries should carry.
var googleSectionTag = map[string]string{
	"Args": "param", "Arguments": "param", "Attributes": "param",
	"Returns": "returns", "Yields": "yields", "Raises": "throws",
	"Examples": "example", "Note": "note",
}

// entryHeaderRe matches a Google-style arg/attribute entry's own
// header line: "name (type): description" or "name: description".
var entryHeaderRe = regexp.MustCompile(`^(\*{0,2}[\w.]+)\s*(?:\(([^)]*)\))?\s*:\s*(.*)$`)

var googleReturnsRe = regexp.MustCompile(`^([\w.\[\], ]+):\s*(.*)$`)
var googleRaisesRe = regexp.MustCompile(`^([\w.]+):\s*(.*)$`)

func splitGoogle(lines []rawLine) (desc string, descStart int, tags []tagLine) {
	var descBuilder strings.Builder
	section := ""
	var cur *tagLine

	flushDesc := func(text string, start int) {
		if descBuilder.Len() == 0 {
			descStart = start
		} else {
			descBuilder.WriteByte(' ')
		}
		descBuilder.WriteString(text)
	}
	appendCur := func(text string) {
		if cur == nil {
			return
		}
		if cur.description != "" {
			cur.description += " " + text
		} else {
			cur.description = text
		}
	}

	for _, l := range lines {
		trimmed := strings.TrimSpace(l.text)
		if trimmed == "" {
			continue
		}
		if m := googleHeaderRe.FindStringSubmatch(trimmed); m != nil {
			section = m[1]
			cur = nil
			continue
		}
		if section == "" {
			flushDesc(trimmed, l.start)
			continue
		}

		tagName := googleSectionTag[section]
		switch section {
		case "Args", "Arguments", "Attributes":
			if m := entryHeaderRe.FindStringSubmatch(trimmed); m != nil {
				tags = append(tags, tagLine{name: tagName, ident: m[1], typ: m[2], description: m[3], offset: l.start})
				cur = &tags[len(tags)-1]
				continue
			}
			appendCur(trimmed)
		case "Returns", "Yields":
			if m := googleReturnsRe.FindStringSubmatch(trimmed); m != nil && cur == nil {
				tags = append(tags, tagLine{name: tagName, typ: strings.TrimSpace(m[1]), description: m[2], offset: l.start})
				cur = &tags[len(tags)-1]
				continue
			}
			if cur == nil {
				tags = append(tags, tagLine{name: tagName, description: trimmed, offset: l.start})
				cur = &tags[len(tags)-1]
				continue
			}
			appendCur(trimmed)
		case "Raises":
			if m := googleRaisesRe.FindStringSubmatch(trimmed); m != nil {
				tags = append(tags, tagLine{name: tagName, typ: m[1], description: m[2], offset: l.start})
				cur = &tags[len(tags)-1]
				continue
			}
			appendCur(trimmed)
		default: // Examples, Note
			if cur == nil {
				tags = append(tags, tagLine{name: tagName, description: trimmed, offset: l.start})
				cur = &tags[len(tags)-1]
				continue
			}
			appendCur(trimmed)
		}
	}
	return descBuilder.String(), descStart, tags
}

var numpyUnderlineRe = regexp.MustCompile(`^-{3,}$`)
var numpySectionName = map[string]bool{
	"Parameters": true, "Returns": true, "Raises": true, "Yields": true, "Attributes": true,
}

func splitNumpy(lines []rawLine) (desc string, descStart int, tags []tagLine) {
	var descBuilder strings.Builder
	section := ""
	var cur *tagLine
	pendingHeader := ""

	flushDesc := func(text string, start int) {
		if descBuilder.Len() == 0 {
			descStart = start
		} else {
			descBuilder.WriteByte(' ')
		}
		descBuilder.WriteString(text)
	}
	appendCur := func(text string) {
		if cur == nil {
			return
		}
		if cur.description != "" {
			cur.description += " " + text
		} else {
			cur.description = text
		}
	}
	sectionTag := func(s string) string {
		switch s {
		case "Parameters", "Attributes":
			return "param"
		case "Returns":
			return "returns"
		case "Yields":
			return "yields"
		case "Raises":
			return "throws"
		default:
			return strings.ToLower(s)
		}
	}

	for _, l := range lines {
		trimmed := strings.TrimRight(l.text, " \t")
		stripped := strings.TrimSpace(trimmed)
		if stripped == "" {
			continue
		}
		if numpyUnderlineRe.MatchString(stripped) && numpySectionName[pendingHeader] {
			section = pendingHeader
			cur = nil
			continue
		}
		if section == "" && pendingHeader == "" {
			if numpySectionName[stripped] {
				pendingHeader = stripped
				continue
			}
			flushDesc(stripped, l.start)
			continue
		}
		if numpySectionName[stripped] {
			pendingHeader = stripped
			continue
		}

		indented := strings.HasPrefix(l.text, " ") || strings.HasPrefix(l.text, "\t")
		if !indented {
			// a new entry header: "name : type" (Parameters/Attributes) or
			// just "type" (Returns/Yields/Raises)
			name, typ := "", stripped
			if i := strings.Index(stripped, ":"); i >= 0 {
				name = strings.TrimSpace(stripped[:i])
				typ = strings.TrimSpace(stripped[i+1:])
			}
			tags = append(tags, tagLine{name: sectionTag(section), ident: name, typ: typ, offset: l.start})
			cur = &tags[len(tags)-1]
			continue
		}
		appendCur(stripped)
	}
	return descBuilder.String(), descStart, tags
}

var sphinxDirectiveRe = regexp.MustCompile(`^:(param|type|returns|return|rtype|raises|raise)(\s+[\w.]+)?:\s*(.*)$`)

func splitSphinx(lines []rawLine) (desc string, descStart int, tags []tagLine) {
	var descBuilder strings.Builder
	var cur *tagLine

	flushDesc := func(text string, start int) {
		if descBuilder.Len() == 0 {
			descStart = start
		} else {
			descBuilder.WriteByte(' ')
		}
		descBuilder.WriteString(text)
	}
	appendCur := func(text string) {
		if cur == nil {
			return
		}
		if cur.description != "" {
			cur.description += " " + text
		} else {
			cur.description = text
		}
	}
	canon := func(d string) string {
		switch d {
		case "return":
			return "returns"
		case "raise":
			return "raises"
		default:
			return d
		}
	}

	for _, l := range lines {
		trimmed := strings.TrimSpace(l.text)
		if trimmed == "" {
			continue
		}
		if m := sphinxDirectiveRe.FindStringSubmatch(trimmed); m != nil {
			directive := canon(m[1])
			ident := strings.TrimSpace(m[2])
			name := directive
			isTypeDirective := directive == "type" || directive == "rtype"
			switch directive {
			case "raises":
				name = "throws"
			case "returns", "rtype":
				name = "returns"
			case "param", "type":
				name = "param"
			}
			tag := tagLine{name: name, ident: ident, offset: l.start}
			if isTypeDirective {
				tag.typ = m[3]
			} else {
				tag.description = m[3]
			}
			tags = append(tags, tag)
			cur = &tags[len(tags)-1]
			continue
		}
		if cur == nil {
			flushDesc(trimmed, l.start)
			continue
		}
		appendCur(trimmed)
	}
	return descBuilder.String(), descStart, tags
}
