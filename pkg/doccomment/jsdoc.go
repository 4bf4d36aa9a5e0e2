package doccomment

import "strings"

// knownTagSlots records, for each recognized @tag name, whether it
// carries a {type} slot and/or a bare identifier slot ahead of its
// description (spec.md §4.5). Unknown tags get neither slot parsed:
// their entire remainder becomes the description verbatim.
var knownTagSlots = map[string]struct{ hasType, hasIdent bool }{
	"param":      {hasType: true, hasIdent: true},
	"returns":    {hasType: true, hasIdent: false},
	"return":     {hasType: true, hasIdent: false},
	"throws":     {hasType: true, hasIdent: false},
	"exception":  {hasType: true, hasIdent: false},
	"deprecated": {hasType: false, hasIdent: false},
	"example":    {hasType: false, hasIdent: false},
	"see":        {hasType: false, hasIdent: false},
}

// splitDescriptionAndTagsJSDoc splits a stripped "/** ... */" body into
// its leading description text and a sequence of @tag lines. A tag
// starts a new segment; any line not starting with "@" continues the
// previous segment (description or tag) on its own source line, joined
// by a single space so the inline parser sees one flowing description.
func splitDescriptionAndTagsJSDoc(lines []rawLine) (desc string, descStart int, tags []tagLine) {
	var descBuilder strings.Builder

	flushInto := func(idx int, text string) {
		if idx < 0 {
			if descBuilder.Len() > 0 {
				descBuilder.WriteByte(' ')
			}
			descBuilder.WriteString(text)
			return
		}
		if tags[idx].description != "" {
			tags[idx].description += " " + text
		} else {
			tags[idx].description = text
		}
	}

	curTag := -1
	for _, l := range lines {
		trimmed := strings.TrimSpace(l.text)
		if trimmed == "" {
			continue
		}
		if descStart == 0 && curTag < 0 && descBuilder.Len() == 0 {
			descStart = l.start
		}

		if strings.HasPrefix(trimmed, "@") {
			name, typ, ident, d := parseTagLine(trimmed[1:])
			tags = append(tags, tagLine{name: name, typ: typ, ident: ident, description: d, offset: l.start})
			curTag = len(tags) - 1
			continue
		}
		flushInto(curTag, trimmed)
	}

	return descBuilder.String(), descStart, tags
}

// parseTagLine parses the remainder of an "@tag ..." line (with the "@"
// already stripped) per the grammar "name [{type}] [identifier]
// [description]".
func parseTagLine(rest string) (name, typ, ident, description string) {
	name, remainder := splitFirstToken(rest)
	slots, known := knownTagSlots[name]
	if !known {
		return name, "", "", strings.TrimSpace(remainder)
	}

	remainder = strings.TrimSpace(remainder)
	if slots.hasType && strings.HasPrefix(remainder, "{") {
		if close := strings.IndexByte(remainder, '}'); close > 0 {
			typ = remainder[1:close]
			remainder = strings.TrimSpace(remainder[close+1:])
		}
	}
	if slots.hasIdent {
		ident, remainder = splitFirstToken(remainder)
		remainder = strings.TrimSpace(remainder)
	}
	// A leading "-" commonly separates the identifier from its
	// description in JSDoc ("@param {number} a - First.").
	remainder = strings.TrimPrefix(remainder, "- ")
	return name, typ, ident, remainder
}

func splitFirstToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
