package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmrmedia/obsidian-landing/pkg/logger"
	"github.com/dmrmedia/obsidian-landing/pkg/requestid"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams contains data for rendering error toasts
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning", "info"
	RequestID string
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders full error page for regular HTTP requests
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders toast notification for DataStar requests
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget specifies where to render toast notifications (default: "#toast-container")
	ToastTarget string

	// ToastMode specifies how to render toasts (default: PatchPrepend)
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is an error reduced to what the client is shown.
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

const genericErrorMessage = "An error occurred processing your request"

// classifyError maps err to a status and a client-safe message.
// Validation errors win over HTTP errors joined with them.
func classifyError(err error) ErrorInfo {
	status, msg := http.StatusInternalServerError, genericErrorMessage

	var httpErr HTTPError
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		status, msg = http.StatusUnprocessableEntity, validationMessage(verr)
	case errors.As(err, &httpErr):
		status, msg = httpErr.Code, httpErr.Text()
	default:
		if code, ok := bindErrorStatus(err); ok {
			status, msg = code, http.StatusText(code)
		}
	}

	info := ErrorInfo{StatusCode: status, Message: msg, Type: "info", LogLevel: slog.LevelError}
	switch {
	case status >= http.StatusInternalServerError:
		info.Type = "error"
	case status >= http.StatusBadRequest:
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// validationMessage joins "field: message" pairs sorted by field.
func validationMessage(verr ValidationError) string {
	fields := make([]string, 0, len(verr))
	for field := range verr {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var parts []string
	for _, field := range fields {
		for _, msg := range verr[field] {
			parts = append(parts, field+": "+msg)
		}
	}
	if len(parts) == 0 {
		return "Validation failed"
	}
	return strings.Join(parts, "; ")
}

type errorRenderer struct {
	cfg ErrorHandlerConfig
	log *slog.Logger
}

func (er errorRenderer) logRequestError(ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	er.log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		logger.StatusCode(info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", IsDataStar(r)),
	)
}

// toast patches a notification into the page. SSE responses keep status 200.
func (er errorRenderer) toast(ctx Context, info ErrorInfo) {
	rid := requestid.FromContext(ctx.Request().Context())
	if er.cfg.ErrorToast == nil {
		er.log.Warn("no error toast configured for datastar request", logger.RequestID(rid))
		return
	}

	c := er.cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: rid})
	resp := Templ(c, WithTarget(er.cfg.ToastTarget), WithPatchMode(er.cfg.ToastMode))
	er.render(ctx, resp, "render_error_toast")
}

// page renders the full error page, or plain text when none is configured.
func (er errorRenderer) page(ctx Context, info ErrorInfo) {
	rid := requestid.FromContext(ctx.Request().Context())
	if er.cfg.ErrorPage == nil {
		http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
		return
	}

	c := er.cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  rid,
		RetryURL:   ctx.Request().URL.Path,
	})
	er.render(ctx, WithStatus(info.StatusCode, Templ(c)), "render_error_page")
}

func (er errorRenderer) render(ctx Context, resp Response, event string) {
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		er.log.Error("failed to render error response",
			logger.RequestID(requestid.FromContext(ctx.Request().Context())),
			logger.Error(err),
			logger.Event(event),
		)
	}
}

// NewErrorHandler returns the error handler for page routes. DataStar
// requests get a toast patched into ToastTarget; other requests get the
// error page with the classified status.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if log == nil {
		log = slog.Default()
	}
	er := errorRenderer{cfg: cfg, log: log.With(logger.Component("error_handler"))}

	return func(ctx Context, err error) {
		info := classifyError(err)
		er.logRequestError(ctx, err, info)
		if IsDataStar(ctx.Request()) {
			er.toast(ctx, info)
			return
		}
		er.page(ctx, info)
	}
}

// NewJSONErrorHandler returns the error handler for API routes. Every error
// is answered with the JSONError envelope regardless of the request type.
func NewJSONErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	er := errorRenderer{log: log.With(logger.Component("error_handler"))}

	return func(ctx Context, err error) {
		er.logRequestError(ctx, err, classifyError(err))
		er.render(ctx, JSONError(err), "render_json_error")
	}
}
