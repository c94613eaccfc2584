package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// UserAgent identifies outbound webhook requests.
const UserAgent = "obsidian-landing-webhook/1.0"

// maxResponseBody caps how much of a destination's reply is kept.
const maxResponseBody = 64 << 10

// Delivery describes a completed webhook delivery.
type Delivery struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Attempts   int
	Duration   time.Duration
}

// Sender posts JSON payloads to webhook endpoints.
// Zero value is not usable; use NewSender to create instances.
type Sender struct {
	client *http.Client
}

// NewSender creates a webhook sender with a pooled HTTP client.
// Per-request deadlines come from WithTimeout.
func NewSender() *Sender {
	return &Sender{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// NewSenderWithClient creates a webhook sender with a custom HTTP client.
func NewSenderWithClient(client *http.Client) *Sender {
	if client == nil {
		return NewSender()
	}
	return &Sender{client: client}
}

// Send POSTs data to webhookURL as application/json and returns the
// destination's reply once it answers with a 2xx status.
//
// A []byte or json.RawMessage payload is sent byte for byte; any other
// value is marshaled with encoding/json. Failed attempts are retried
// according to the configured retry count and backoff, except for
// permanent 4xx answers.
//
//	d, err := sender.Send(ctx, cfg.DestinationURL(), payload.Raw,
//		webhook.WithTimeout(10*time.Second),
//		webhook.WithHeader("X-Submission-ID", id),
//	)
func (s *Sender) Send(ctx context.Context, webhookURL string, data any, opts ...SendOption) (*Delivery, error) {
	payload, err := encodePayload(data)
	if err != nil {
		return nil, err
	}

	if err := validateInputs(webhookURL, payload); err != nil {
		return nil, err
	}

	options := newSendOptions(opts)
	if options.breaker != nil && !options.breaker.Allow() {
		return nil, ErrCircuitOpen
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= options.maxRetries+1; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(lastErr, ctx.Err())
			case <-time.After(options.backoff.NextInterval(attempt - 1)):
			}
		}

		result, err := s.attempt(ctx, webhookURL, payload, options)
		result.Attempt = attempt

		if options.onDelivery != nil {
			options.onDelivery(result)
		}

		if options.breaker != nil {
			if err == nil {
				options.breaker.RecordSuccess()
			} else {
				options.breaker.RecordFailure()
			}
		}

		if err == nil {
			return &Delivery{
				StatusCode: result.StatusCode,
				Header:     result.header,
				Body:       result.body,
				Attempts:   attempt,
				Duration:   time.Since(start),
			}, nil
		}

		lastErr = err
		if isPermanentError(result.StatusCode) || ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrWebhookDeliveryFailed, lastErr)
}

// encodePayload returns pre-encoded JSON unchanged and marshals anything else.
func encodePayload(data any) ([]byte, error) {
	switch v := data.(type) {
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return payload, nil
}

func validateInputs(webhookURL string, payload []byte) error {
	if webhookURL == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}

	if len(payload) == 0 {
		return fmt.Errorf("%w: payload cannot be empty", ErrInvalidPayload)
	}

	return nil
}

// attempt performs a single POST and captures the reply.
func (s *Sender) attempt(ctx context.Context, webhookURL string, payload []byte, options *sendOptions) (DeliveryResult, error) {
	start := time.Now()
	var result DeliveryResult

	reqCtx, cancel := context.WithTimeout(ctx, options.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		result.Error = err
		return result, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = options.header.Clone()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	if options.secret != "" {
		sig, err := SignPayload(options.secret, payload)
		if err != nil {
			result.Error = err
			return result, err
		}
		sig.Apply(req.Header)
	}

	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return result, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return result, fmt.Errorf("%w: %w", ErrTemporaryFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.header = resp.Header
	result.body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		result.Error = err
		return result, fmt.Errorf("%w: reading response: %w", ErrTemporaryFailure, err)
	}

	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		result.Error = &StatusError{Code: resp.StatusCode, Body: truncateBody(result.body)}
		return result, result.Error
	}

	return result, nil
}

// truncateBody flattens a reply body for inclusion in error messages.
func truncateBody(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// isPermanentError reports whether a status code will not change on retry.
func isPermanentError(statusCode int) bool {
	if statusCode < 400 || statusCode >= 500 {
		return false
	}
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return true
}
