// Package binder decodes HTTP request bodies into Go values.
//
// Two binders are provided:
//
//   - JSON(): application/json bodies, up to 1MB, strict about trailing data
//     and unknown struct fields
//   - Form(): application/x-www-form-urlencoded and multipart/form-data bodies,
//     bound into structs via `form` tags or into string maps
//
// Bound string values are stripped of NUL bytes and invalid UTF-8.
//
// Binders return wrapped sentinel errors so callers can map them to status codes:
//
//   - ErrMissingContentType, ErrUnsupportedMediaType: 415 Unsupported Media Type
//   - ErrFailedToParseJSON, ErrInvalidForm: 400 Bad Request
//
// ErrBinderNotApplicable lets a binder decline a request so the next binder
// in a chain can handle it.
package binder
