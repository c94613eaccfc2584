package handler_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/dmrmedia/obsidian-landing/handler"
	"github.com/dmrmedia/obsidian-landing/pkg/binder"
)

func mockErrorPage(params handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "Error %d: %s", params.StatusCode, params.Error)
		return err
	})
}

func mockErrorToast(params handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast %s">%s</div>`, params.Type, params.Message)
		return err
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewErrorHandler_HTTPRequest(t *testing.T) {
	t.Parallel()

	verr := handler.NewValidationError()
	verr.Add("zip", "ZIP code must be 5 digits")
	verr.Add("email", "Email is required")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "generic error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "An error occurred processing your request",
		},
		{
			name:       "http error uses status text",
			err:        handler.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "Not Found",
		},
		{
			name:       "http error with message",
			err:        handler.NewHTTPError(http.StatusInternalServerError, "relay_failed", "Failed to submit form"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Failed to submit form",
		},
		{
			name:       "validation error",
			err:        verr,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "email: Email is required; zip: ZIP code must be 5 digits",
		},
		{
			name:       "form parse error",
			err:        fmt.Errorf("%w: bad body", binder.ErrInvalidForm),
			wantStatus: http.StatusBadRequest,
			wantBody:   "Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eh := handler.NewErrorHandler(discardLogger(), handler.ErrorHandlerConfig{ErrorPage: mockErrorPage})

			w := httptest.NewRecorder()
			eh(handler.NewContext(w, httptest.NewRequest("GET", "/test", nil)), tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestNewErrorHandler_DataStarRequest(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(discardLogger(), handler.ErrorHandlerConfig{
		ErrorPage:  mockErrorPage,
		ErrorToast: mockErrorToast,
	})

	w := httptest.NewRecorder()
	eh(handler.NewContext(w, datastarRequest("POST", "/forms/valuation")), handler.ErrTooManyRequests)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "#toast-container")
	assert.Contains(t, body, "prepend")
	assert.Contains(t, body, `<div class="toast warning">Too Many Requests</div>`)
}

func TestNewErrorHandler_CustomToastTarget(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(discardLogger(), handler.ErrorHandlerConfig{
		ErrorToast:  mockErrorToast,
		ToastTarget: "#alerts",
		ToastMode:   handler.PatchInner,
	})

	w := httptest.NewRecorder()
	eh(handler.NewContext(w, datastarRequest("POST", "/forms/moving")), errors.New("boom"))

	assert.Contains(t, w.Body.String(), "#alerts")
	assert.Contains(t, w.Body.String(), "inner")
	assert.Contains(t, w.Body.String(), "toast error")
}

func TestNewErrorHandler_NoComponentsConfigured(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})

	w := httptest.NewRecorder()
	eh(handler.NewContext(w, httptest.NewRequest("GET", "/", nil)), handler.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found\n", w.Body.String())
}

func TestNewJSONErrorHandler(t *testing.T) {
	t.Parallel()

	eh := handler.NewJSONErrorHandler(discardLogger())

	w := httptest.NewRecorder()
	req := datastarRequest("POST", "/api/submit-valuation")
	eh(handler.NewContext(w, req), handler.NewHTTPError(http.StatusInternalServerError, "webhook_not_configured", "Webhook URL not configured"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Webhook URL not configured","code":"webhook_not_configured"}`, w.Body.String())
}
