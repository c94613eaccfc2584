package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmrmedia/obsidian-landing/pkg/binder"
)

// HandlerFunc handles a bound request of type R within context C.
//
//	h := handler.HandlerFunc[handler.Context, leads.Payload](
//		func(ctx handler.Context, req leads.Payload) handler.Response {
//			return handler.JSON(req.Fields)
//		},
//	)
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response writes headers, status and body. A returned error is passed to
// the handler's ErrorHandler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes a request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler answers a request that failed to bind or render.
type ErrorHandler[C Context] func(ctx C, err error)

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders      []Bind
	errorHandler ErrorHandler[C]
}

// WithBinders runs binders in order against the same request value.
// Binders returning binder.ErrBinderNotApplicable are skipped.
//
//	r.Post("/forms/{form}", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, leads.Submission](binder.Form()),
//	))
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		for _, b := range binders {
			if b != nil {
				c.binders = append(c.binders, b)
			}
		}
	}
}

// WithErrorHandler replaces the plain-text default error handler.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// plainErrorHandler answers with http.Error. HTTPError keeps its status
// code; anything else becomes 500.
func plainErrorHandler[C Context](ctx C, err error) {
	status, msg := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status, msg = httpErr.Code, httpErr.Text()
	}
	http.Error(ctx.ResponseWriter(), msg, status)
}

// Wrap adapts h to http.HandlerFunc: it builds the context, runs the
// binders, calls h and renders the response. C must be satisfied by the
// value NewContext returns.
//
//	r.Get("/", handler.Wrap(home))
//	r.Post("/api/submit-valuation", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, leads.Payload](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, leads.Payload](jsonErrors),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{errorHandler: plainErrorHandler[C]}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := NewContext(w, r).(C)
		if !ok {
			panic(fmt.Sprintf("handler.Wrap: context type %T not supported", *new(C)))
		}

		var req R
		for _, bind := range cfg.binders {
			err := bind(r, &req)
			if errors.Is(err, binder.ErrBinderNotApplicable) {
				continue
			}
			if err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

type failResponse struct {
	err error
}

func (f failResponse) Render(http.ResponseWriter, *http.Request) error {
	return f.err
}

// Fail routes err through the wrapped handler's ErrorHandler. A nil err
// becomes ErrInternalServerError.
//
//	if !ok {
//		return handler.Fail(handler.ErrNotFound)
//	}
func Fail(err error) Response {
	if err == nil {
		err = ErrInternalServerError
	}
	return failResponse{err: err}
}
