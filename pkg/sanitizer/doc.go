// Package sanitizer provides composable string transformations for
// cleaning form input before validation, logging and notification.
//
//	clean := sanitizer.Compose(sanitizer.NFC, sanitizer.SingleLine)
//	name := clean(raw)
//	email := sanitizer.NormalizeEmail(rawEmail)
//	logged := sanitizer.MaskEmail(email)
//
// All functions are pure and safe for concurrent use.
package sanitizer
