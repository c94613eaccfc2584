package webhook

import (
	"net/http"
	"time"
)

// DeliveryResult is reported to a DeliveryHook after every attempt.
type DeliveryResult struct {
	Success    bool
	StatusCode int
	Attempt    int
	Duration   time.Duration
	Error      error

	header http.Header
	body   []byte
}

// DeliveryHook observes delivery attempts, typically for logging.
type DeliveryHook func(result DeliveryResult)

// SendOption configures a single Send call.
type SendOption func(*sendOptions)

type sendOptions struct {
	timeout time.Duration
	header  http.Header

	maxRetries int
	backoff    BackoffStrategy

	secret     string
	breaker    *CircuitBreaker
	onDelivery DeliveryHook
}

func newSendOptions(opts []SendOption) *sendOptions {
	o := &sendOptions{
		timeout:    10 * time.Second,
		header:     make(http.Header),
		maxRetries: 3,
		backoff:    DefaultBackoffStrategy(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTimeout bounds each attempt. Non-positive values keep the 10s default.
func WithTimeout(timeout time.Duration) SendOption {
	return func(o *sendOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHeader sets a request header. Empty keys or values are ignored;
// Content-Type, Accept and User-Agent cannot be overridden.
func WithHeader(key, value string) SendOption {
	return func(o *sendOptions) {
		if key != "" && value != "" {
			o.header.Set(key, value)
		}
	}
}

// WithMaxRetries sets how many times a failed attempt is repeated.
// Zero disables retries; negative values keep the default of 3.
func WithMaxRetries(n int) SendOption {
	return func(o *sendOptions) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithNoRetry is WithMaxRetries(0).
func WithNoRetry() SendOption {
	return WithMaxRetries(0)
}

// WithBackoff sets the delay strategy between retries.
func WithBackoff(strategy BackoffStrategy) SendOption {
	return func(o *sendOptions) {
		if strategy != nil {
			o.backoff = strategy
		}
	}
}

// WithSignature signs the payload with HMAC-SHA256. An empty secret leaves
// the request unsigned.
func WithSignature(secret string) SendOption {
	return func(o *sendOptions) {
		o.secret = secret
	}
}

// WithCircuitBreaker guards the destination with cb. Share one breaker per
// destination; nil disables the guard.
func WithCircuitBreaker(cb *CircuitBreaker) SendOption {
	return func(o *sendOptions) {
		o.breaker = cb
	}
}

// WithOnDelivery registers hook for every attempt.
func WithOnDelivery(hook DeliveryHook) SendOption {
	return func(o *sendOptions) {
		o.onDelivery = hook
	}
}
