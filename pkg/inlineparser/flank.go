package inlineparser

// flankingRule classifies a delimiter run as left-flanking (canOpen) and
// right-flanking (canClose) per the whitespace/punctuation rule shared
// by CommonMark emphasis and GFM strikethrough, plus the underscore
// intraword restriction: a "_" run can't open or close when both
// surrounding characters are alphanumeric.
func flankingRule(delim, before, after byte) (canOpen, canClose bool) {
	beforeSpace := before == 0 || isWhitespaceByte(before)
	afterSpace := after == 0 || isWhitespaceByte(after)
	beforePunct := isPunctByte(before)
	afterPunct := isPunctByte(after)

	leftFlanking := !afterSpace && (!afterPunct || beforeSpace || beforePunct)
	rightFlanking := !beforeSpace && (!beforePunct || afterSpace || afterPunct)

	canOpen = leftFlanking
	canClose = rightFlanking

	if delim == '_' && isWordByte(before) && isWordByte(after) {
		// intraword underscore ("snake_case") never opens or closes emphasis
		canOpen = false
		canClose = false
	}
	return canOpen, canClose
}

func isWhitespaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isPunctByte(c byte) bool {
	if c == 0 {
		return false
	}
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case isWhitespaceByte(c):
		return false
	default:
		return true
	}
}
