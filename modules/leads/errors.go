package leads

import (
	"errors"
	"net/http"

	"github.com/dmrmedia/obsidian-landing/handler"
)

var (
	ErrInvalidConfig        = errors.New("invalid leads configuration")
	ErrWebhookNotConfigured = errors.New("webhook URL not configured")
	ErrRelayFailed          = errors.New("failed to submit form")
	ErrInvalidSubmission    = errors.New("invalid submission")
	ErrUnknownForm          = errors.New("unknown form")
)

var (
	errHTTPNotConfigured = handler.NewHTTPError(http.StatusInternalServerError, "webhook_not_configured", "Webhook URL not configured")
	errHTTPRelayFailed   = handler.NewHTTPError(http.StatusInternalServerError, "relay_failed", "Failed to submit form")
)

// httpError attaches the client-facing HTTPError to a relay failure.
// The original error stays in the chain for logging.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrWebhookNotConfigured):
		return errors.Join(errHTTPNotConfigured, err)
	case errors.Is(err, ErrRelayFailed):
		return errors.Join(errHTTPRelayFailed, err)
	}
	return err
}
