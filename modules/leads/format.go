package leads

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Line is one field of a formatted submission.
type Line struct {
	Label string
	Value string
}

func (l Line) String() string {
	return l.Label + ": " + l.Value
}

// FormatFieldName turns a field key into a label: a space goes before
// every capital letter, the first letter is capitalized and the result is
// trimmed. "phoneNumber" becomes "Phone Number", "ZIPCode" "Z I P Code".
func FormatFieldName(name string) string {
	var b strings.Builder
	b.Grow(len(name) * 2)
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	label := b.String()
	if first, size := utf8.DecodeRuneInString(label); first != utf8.RuneError {
		label = string(unicode.ToUpper(first)) + label[size:]
	}
	return strings.TrimSpace(label)
}

// FormatFields renders s as labelled lines. Fields declared by form come
// first in declaration order, other keys follow sorted. Empty values
// render as "N/A" and control fields are skipped.
func FormatFields(form Form, s Submission) []Line {
	lines := make([]Line, 0, len(s)+len(form.Fields))
	seen := make(map[string]bool, len(form.Fields))

	for _, fd := range form.Fields {
		seen[fd.Name] = true
		lines = append(lines, newLine(fd.Name, s[fd.Name]))
	}

	extra := make([]string, 0, len(s))
	for key := range s {
		if !seen[key] && !isControlKey(key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		lines = append(lines, newLine(key, s[key]))
	}

	return lines
}

// FormatText joins lines with newlines.
func FormatText(lines []Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

func newLine(key, value string) Line {
	if strings.TrimSpace(value) == "" {
		value = "N/A"
	}
	return Line{Label: FormatFieldName(key), Value: value}
}
