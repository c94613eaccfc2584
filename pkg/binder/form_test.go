package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/pkg/binder"
)

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/forms/realtor", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/forms/moving", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestForm_Struct(t *testing.T) {
	t.Parallel()

	type request struct {
		Name     string   `form:"name"`
		Timeline string   `form:"timeline"`
		Tags     []string `form:"tags"`
		Consent  bool     `form:"consent"`
		Count    *int     `form:"count"`
		Internal string   `form:"-"`
	}

	values := url.Values{
		"name":     {"Jane"},
		"timeline": {"1-3-months"},
		"tags":     {"buyer,first-time"},
		"consent":  {"on"},
		"count":    {"2"},
		"Internal": {"x"},
	}

	var result request
	require.NoError(t, binder.Form()(formRequest(values), &result))

	assert.Equal(t, "Jane", result.Name)
	assert.Equal(t, "1-3-months", result.Timeline)
	assert.Equal(t, []string{"buyer", "first-time"}, result.Tags)
	assert.True(t, result.Consent)
	require.NotNil(t, result.Count)
	assert.Equal(t, 2, *result.Count)
	assert.Empty(t, result.Internal)
}

func TestForm_Map(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		var result map[string]string
		err := binder.Form()(formRequest(url.Values{
			"name":  {"Jane", "ignored"},
			"email": {"jane@example.com"},
			"phone": {""},
		}), &result)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"name": "Jane", "email": "jane@example.com", "phone": ""}, result)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var result map[string]string
		err := binder.Form()(multipartRequest(t, map[string]string{"reason": "New job"}), &result)

		require.NoError(t, err)
		assert.Equal(t, "New job", result["reason"])
	})

	t.Run("named map type", func(t *testing.T) {
		t.Parallel()

		type fields map[string]string
		var result fields
		require.NoError(t, binder.Form()(formRequest(url.Values{"zip": {"80202"}}), &result))
		assert.Equal(t, fields{"zip": "80202"}, result)
	})

	t.Run("strips NUL bytes", func(t *testing.T) {
		t.Parallel()

		var result map[string]string
		require.NoError(t, binder.Form()(formRequest(url.Values{"name": {"Ja\x00ne"}}), &result))
		assert.Equal(t, "Jane", result["name"])
	})
}

func TestForm_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		var result map[string]string
		require.ErrorIs(t, binder.Form()(req, &result), binder.ErrMissingContentType)
	})

	t.Run("json content type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		var result map[string]string
		require.ErrorIs(t, binder.Form()(req, &result), binder.ErrUnsupportedMediaType)
	})

	t.Run("multipart without boundary", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data")
		var result map[string]string
		require.ErrorIs(t, binder.Form()(req, &result), binder.ErrInvalidForm)
	})

	t.Run("invalid boundary", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		req.Header.Set("Content-Type", `multipart/form-data; boundary="`+strings.Repeat("x", 71)+`"`)
		var result map[string]string
		require.ErrorIs(t, binder.Form()(req, &result), binder.ErrInvalidForm)
	})

	t.Run("unsupported target", func(t *testing.T) {
		t.Parallel()

		var result []string
		require.ErrorIs(t, binder.Form()(formRequest(url.Values{"a": {"b"}}), &result), binder.ErrInvalidForm)
	})

	t.Run("invalid int", func(t *testing.T) {
		t.Parallel()

		var result struct {
			Count int `form:"count"`
		}
		require.ErrorIs(t, binder.Form()(formRequest(url.Values{"count": {"many"}}), &result), binder.ErrInvalidForm)
	})
}
