package handler_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/handler"
)

type ctxKey struct{}

func TestNewContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "value"))
	w := httptest.NewRecorder()

	ctx := handler.NewContext(w, req)

	assert.Same(t, req, ctx.Request())
	assert.Equal(t, w, ctx.ResponseWriter())
	assert.Equal(t, "value", ctx.Value(ctxKey{}))
	assert.NoError(t, ctx.Err())
}

func TestContext_Cancellation(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/", nil).WithContext(parent)
	ctx := handler.NewContext(httptest.NewRecorder(), req)

	cancel()

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestContext_SSE(t *testing.T) {
	t.Parallel()

	t.Run("regular request has no generator", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		ctx := handler.NewContext(w, req)

		assert.Nil(t, ctx.SSE())
		assert.Empty(t, w.Header().Get("Content-Type"))
	})

	t.Run("datastar request gets a reused generator", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/forms/valuation", nil)
		req.Header.Set(handler.DataStarRequestHeader, "true")
		w := httptest.NewRecorder()
		ctx := handler.NewContext(w, req)

		sse := ctx.SSE()
		require.NotNil(t, sse)
		assert.Same(t, sse, ctx.SSE())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	})
}
