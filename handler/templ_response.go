package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent is satisfied by templ.Component.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption tunes how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget patches into the element matching selector.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets the patch mode, e.g. PatchPrepend.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// componentResponse streams patch over SSE to DataStar clients and writes
// page as HTML to everyone else.
type componentResponse struct {
	patch TemplComponent
	page  TemplComponent
	opts  []TemplOption
}

func (c componentResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		return c.page.Render(r.Context(), w)
	}
	return NewSSE(w, r).PatchElementTempl(c.patch, c.opts...)
}

// Templ renders one component for both request kinds.
//
//	return handler.Templ(
//		views.ErrorToast(params),
//		handler.WithTarget("#toast-container"),
//		handler.WithPatchMode(handler.PatchPrepend),
//	)
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return componentResponse{patch: component, page: component, opts: opts}
}

// TemplPartial patches only partial for DataStar requests and renders full
// otherwise.
//
//	return handler.TemplPartial(form, page, handler.WithTarget("#lead-form-valuation"))
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return componentResponse{patch: partial, page: full, opts: opts}
}

type statusResponse struct {
	status int
	next   Response
}

// SSE streams always open with 200.
func (s statusResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return s.next.Render(w, r)
	}
	return s.next.Render(&statusWriter{ResponseWriter: w, status: s.status}, r)
}

// WithStatus renders resp with status for regular requests.
//
//	return handler.WithStatus(http.StatusUnprocessableEntity, handler.Templ(form))
func WithStatus(status int, resp Response) Response {
	return statusResponse{status: status, next: resp}
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(int) {
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(w.status)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.WriteHeader(w.status)
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
