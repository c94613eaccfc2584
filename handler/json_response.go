package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/dmrmedia/obsidian-landing/pkg/binder"
)

// JSONResponse is the JSON envelope returned by API handlers.
// Successful responses carry Success and Data; failures carry Error
// plus an optional machine-readable Code and per-field Details.
type JSONResponse struct {
	Success bool                `json:"success,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Code    string              `json:"code,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
	Meta    map[string]any      `json:"meta,omitempty"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONMeta adds metadata to response
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON creates a success envelope: {"success":true,"data":v}.
// A nil v omits the data key.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Success: true, Data: v},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// JSONError creates an error envelope: {"error":"..."}.
// The status code is derived from the error type and may be overridden
// with WithJSONStatus.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{}
	r.status, r.body = errorToBody(err)

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// errorToBody maps an error onto a status code and envelope.
// Unclassified errors never leak their text to the client.
func errorToBody(err error) (int, JSONResponse) {
	var valErr ValidationError
	if errors.As(err, &valErr) {
		body := JSONResponse{
			Error: valErr.Error(),
			Code:  "validation_error",
		}
		if len(valErr) > 0 {
			body.Details = make(map[string][]string, len(valErr))
			maps.Copy(body.Details, valErr)
		}
		return http.StatusUnprocessableEntity, body
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, JSONResponse{Error: httpErr.Text(), Code: httpErr.Key}
	}

	if status, ok := bindErrorStatus(err); ok {
		return status, JSONResponse{Error: err.Error(), Code: "bad_request"}
	}

	return http.StatusInternalServerError, JSONResponse{
		Error: http.StatusText(http.StatusInternalServerError),
		Code:  ErrInternalServerError.Key,
	}
}

// bindErrorStatus reports the status code for request binding failures.
func bindErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return http.StatusUnsupportedMediaType, true
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrInvalidForm):
		return http.StatusBadRequest, true
	}
	return 0, false
}
