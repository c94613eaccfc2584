package binder

import "strings"

// sanitizeStringValue drops NUL bytes and invalid UTF-8 sequences from bound input.
func sanitizeStringValue(s string) string {
	if strings.IndexByte(s, 0) != -1 {
		s = strings.ReplaceAll(s, "\x00", "")
	}
	return strings.ToValidUTF8(s, "")
}

// validateBoundary checks a multipart boundary against RFC 2046:
// 1 to 70 characters from the bcharsnospace set plus inner spaces.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 {
		return false
	}
	if boundary[len(boundary)-1] == ' ' {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}
