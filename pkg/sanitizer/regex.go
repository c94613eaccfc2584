package sanitizer

import "regexp"

var (
	dotRegex         = regexp.MustCompile(`\.+`)
	nonDigitRegex    = regexp.MustCompile(`\D`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]*>`)
	ansiEscapeRegex  = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	blankLinesRegex  = regexp.MustCompile(`\n{3,}`)
	lineTrailerRegex = regexp.MustCompile(`[ \t]+\n`)
)
