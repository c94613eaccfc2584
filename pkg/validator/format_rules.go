package validator

import (
	"fmt"
	"regexp"
	"slices"
)

// emailPattern is the address grammar browsers apply to <input type="email">.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

// ValidEmail accepts exactly what a browser email input accepts, so
// "jane@localhost" passes and "Jane <jane@example.com>" does not.
func ValidEmail(field, value string) Rule {
	return newRule(field, "must be a valid email address", func() bool {
		return emailPattern.MatchString(value)
	})
}

// InList validates that value is one of allowed.
func InList[T comparable](field string, value T, allowed []T) Rule {
	return newRule(field, fmt.Sprintf("must be one of: %v", allowed), func() bool {
		return slices.Contains(allowed, value)
	})
}

// Matches validates value against a precompiled pattern. description names
// the expected format in the error message.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return newRule(field, "must be a valid "+description, func() bool {
		return re.MatchString(value)
	})
}
