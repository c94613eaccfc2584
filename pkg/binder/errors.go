package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrMissingContentType   = errors.New("missing content type")

	// ErrBinderNotApplicable is returned by binders that do not handle the
	// request's content type when used with FormOrJSON-style chains.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
