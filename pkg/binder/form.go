package binder

import (
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form creates a binder for application/x-www-form-urlencoded and
// multipart/form-data request bodies. Uploaded files are ignored.
//
// The target may be a pointer to a struct or to a map with string values.
// Struct fields bind by their `form` tag (or lowercased name, `form:"-"`
// skips the field) and support basic types, pointers and slices.
// Map targets receive the first value of every submitted key.
//
//	type Subscribe struct {
//		Email string   `form:"email"`
//		Tags  []string `form:"tags"`
//	}
//
//	r.Post("/forms/{form}", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, leads.Submission](binder.Form()),
//	))
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: missing content-type header, expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type", ErrInvalidForm)
		}

		var values map[string][]string

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			boundary, ok := params["boundary"]
			if !ok || boundary == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if !validateBoundary(boundary) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrInvalidForm)
			}

			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
		}

		for key, vals := range values {
			for i := range vals {
				vals[i] = sanitizeStringValue(vals[i])
			}
			values[key] = vals
		}

		return bindForm(v, values)
	}
}

// bindForm dispatches to map or struct binding depending on the target.
func bindForm(v any, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidForm)
	}

	elem := rv.Elem()
	switch {
	case elem.Kind() == reflect.Map && elem.Type().Key().Kind() == reflect.String && elem.Type().Elem().Kind() == reflect.String:
		return bindToMap(elem, values)
	case elem.Kind() == reflect.Struct:
		return bindStruct(v, "form", values, ErrInvalidForm)
	}

	return fmt.Errorf("%w: target must be a pointer to struct or map of strings", ErrInvalidForm)
}

// bindToMap stores the first value of each key into a string map.
func bindToMap(m reflect.Value, values map[string][]string) error {
	if m.IsNil() {
		m.Set(reflect.MakeMapWithSize(m.Type(), len(values)))
	}

	keyType, elemType := m.Type().Key(), m.Type().Elem()
	for key, vals := range values {
		if strings.TrimSpace(key) == "" {
			continue
		}
		value := ""
		if len(vals) > 0 {
			value = vals[0]
		}
		m.SetMapIndex(reflect.ValueOf(key).Convert(keyType), reflect.ValueOf(value).Convert(elemType))
	}

	return nil
}
