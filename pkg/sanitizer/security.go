package sanitizer

import (
	"html"
	"strings"
)

// EscapeHTML escapes special HTML characters.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// RemoveNullBytes removes NUL characters.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// RemoveControlSequences removes ANSI escape sequences and control
// characters other than common whitespace.
func RemoveControlSequences(s string) string {
	return RemoveControlChars(ansiEscapeRegex.ReplaceAllString(s, ""))
}

// PreventHeaderInjection removes line breaks and NUL bytes so s is safe in a
// mail or HTTP header.
func PreventHeaderInjection(s string) string {
	return strings.NewReplacer("\r", "", "\n", "", "\x00", "").Replace(s)
}

// UserInput is the baseline cleanup for free-text form fields: NFC
// normalization, control sequence removal and trimming, bounded to maxLen
// characters.
func UserInput(s string, maxLen int) string {
	return Apply(s,
		NFC,
		RemoveNullBytes,
		RemoveControlSequences,
		Trim,
		func(s string) string { return MaxLength(s, maxLen) },
	)
}
