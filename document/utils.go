package document

import (
	"strings"
	"unicode"
)

// StripUnprintable removes control and other non-printable runes from a
// cell value, keeping plain spaces.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' {
			return r
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
}

// EscapeMarkdown escapes characters that would break a markdown table cell.
func EscapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
