package clientip_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmrmedia/obsidian-landing/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "203.0.113.7:5123", want: "203.0.113.7"},
		{name: "remote addr without port", remoteAddr: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "cloudflare first", headers: map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "198.51.100.2"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.1"},
		{name: "forwarded for first valid", headers: map[string]string{"X-Forwarded-For": "garbage, 198.51.100.3, 10.0.0.2"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.3"},
		{name: "invalid header falls through", headers: map[string]string{"CF-Connecting-IP": "nope", "X-Real-IP": "198.51.100.4"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.4"},
		{name: "ipv4-mapped ipv6 unmapped", headers: map[string]string{"X-Real-IP": "::ffff:198.51.100.5"}, remoteAddr: "10.0.0.1:1", want: "198.51.100.5"},
		{name: "garbage everywhere", remoteAddr: "not-an-ip", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(req))
		})
	}
}

func TestFromRequest_CustomHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	req.Header.Set("Fly-Client-IP", "198.51.100.9")
	req.Header.Set("X-Forwarded-For", "198.51.100.10")

	assert.Equal(t, "198.51.100.9", clientip.FromRequest(req, "Fly-Client-IP"))
	assert.Equal(t, "10.0.0.1", clientip.FromRequest(req))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.20")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.20", got)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	attr, ok := clientip.LoggerExtractor()(clientip.WithContext(context.Background(), "198.51.100.1"))
	assert.True(t, ok)
	assert.Equal(t, slog.String("client_ip", "198.51.100.1"), attr)

	_, ok = clientip.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
