package leads

import (
	"cmp"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Config holds lead relay settings.
type Config struct {
	WebhookURL       string `env:"WEBHOOK_URL"`
	ZapierWebhookURL string `env:"ZAPIER_WEBHOOK_URL"`

	WebhookTimeout         time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"10s"`
	WebhookMaxRetries      int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"0"`
	WebhookSigningSecret   string        `env:"WEBHOOK_SIGNING_SECRET"`
	WebhookCircuitFailures int           `env:"WEBHOOK_CIRCUIT_FAILURES" envDefault:"0"`
	WebhookCircuitCooldown time.Duration `env:"WEBHOOK_CIRCUIT_COOLDOWN" envDefault:"30s"`

	NotifyTo      string        `env:"EMAIL_TO" envDefault:"arohm@dmrmedia.org"`
	NotifyTimeout time.Duration `env:"EMAIL_TIMEOUT" envDefault:"10s"`
	Timezone      string        `env:"EMAIL_TIMEZONE" envDefault:"America/Denver"`

	SiteName     string `env:"SITE_NAME" envDefault:"Obsidian Denver"`
	ThankYouPath string `env:"THANK_YOU_PATH" envDefault:"/thank-you"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		WebhookTimeout:         10 * time.Second,
		WebhookCircuitCooldown: 30 * time.Second,
		NotifyTo:               "arohm@dmrmedia.org",
		NotifyTimeout:          10 * time.Second,
		Timezone:               "America/Denver",
		SiteName:               "Obsidian Denver",
		ThankYouPath:           "/thank-you",
	}
}

// DestinationURL returns the webhook URL. ZAPIER_WEBHOOK_URL is honoured
// when WEBHOOK_URL is unset.
func (c Config) DestinationURL() string {
	return strings.TrimSpace(cmp.Or(c.WebhookURL, c.ZapierWebhookURL))
}

// Location returns the timezone used for submission timestamps, UTC if
// Timezone cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate implements config.Validator.
func (c Config) Validate() error {
	var errs []error
	if c.WebhookMaxRetries < 0 {
		errs = append(errs, errors.New("WEBHOOK_MAX_RETRIES must not be negative"))
	}
	if c.WebhookCircuitFailures < 0 {
		errs = append(errs, errors.New("WEBHOOK_CIRCUIT_FAILURES must not be negative"))
	}
	if _, err := mail.ParseAddress(c.NotifyTo); err != nil {
		errs = append(errs, fmt.Errorf("EMAIL_TO: %w", err))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("EMAIL_TIMEZONE: %w", err))
	}
	if !strings.HasPrefix(c.ThankYouPath, "/") {
		errs = append(errs, errors.New("THANK_YOU_PATH must be an absolute path"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
