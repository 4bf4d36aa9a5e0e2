package scanner

import (
	"strings"
	"unicode/utf8"
)

// SanitizeUTF8 validates b as UTF-8 and returns a string, substituting the
// Unicode replacement character for any malformed byte sequence. Nothing
// else in the module calls it: the scanner and the parsers work on raw
// bytes and do not check UTF-8.
func SanitizeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
