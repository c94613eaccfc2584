package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmrmedia/obsidian-landing/pkg/email"
	"github.com/dmrmedia/obsidian-landing/pkg/email/templates"
	"github.com/dmrmedia/obsidian-landing/pkg/logger"
	"github.com/dmrmedia/obsidian-landing/pkg/sanitizer"
	"github.com/dmrmedia/obsidian-landing/pkg/webhook"
)

// SubmissionIDHeader carries the submission id to the webhook destination.
const SubmissionIDHeader = "X-Submission-ID"

// Relay delivers submissions to the webhook destination and the
// notification mailbox.
type Relay struct {
	cfg     Config
	sender  *webhook.Sender
	mailer  email.EmailSender
	breaker *webhook.CircuitBreaker
	log     *slog.Logger
	now     func() time.Time
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithLogger sets the relay logger.
func WithLogger(log *slog.Logger) RelayOption {
	return func(r *Relay) {
		if log != nil {
			r.log = log
		}
	}
}

// WithWebhookSender replaces the default webhook sender.
func WithWebhookSender(s *webhook.Sender) RelayOption {
	return func(r *Relay) {
		if s != nil {
			r.sender = s
		}
	}
}

// WithClock overrides the time source used for notice timestamps.
func WithClock(now func() time.Time) RelayOption {
	return func(r *Relay) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRelay creates a Relay. A nil mailer disables email notices.
func NewRelay(cfg Config, mailer email.EmailSender, opts ...RelayOption) *Relay {
	r := &Relay{
		cfg:    cfg,
		sender: webhook.NewSender(),
		mailer: mailer,
		log:    logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if cfg.WebhookCircuitFailures > 0 {
		r.breaker = webhook.NewCircuitBreaker(cfg.WebhookCircuitFailures, 1, cfg.WebhookCircuitCooldown)
	}
	r.log = r.log.With(logger.Component("leads.relay"))
	return r
}

// Forward posts body unchanged to the configured webhook and returns the
// destination's reply as JSON. Replies that are not JSON are returned as a
// JSON string, an empty reply as null.
func (r *Relay) Forward(ctx context.Context, form Form, id string, body json.RawMessage) (json.RawMessage, error) {
	url := r.cfg.DestinationURL()
	if url == "" {
		r.log.ErrorContext(ctx, "webhook destination missing",
			logger.Form(string(form.Kind)),
			logger.SubmissionID(id),
			logger.Channel(ChannelWebhook.String()),
		)
		return nil, ErrWebhookNotConfigured
	}

	opts := []webhook.SendOption{
		webhook.WithTimeout(r.cfg.WebhookTimeout),
		webhook.WithHeader(SubmissionIDHeader, id),
		webhook.WithMaxRetries(r.cfg.WebhookMaxRetries),
		webhook.WithSignature(r.cfg.WebhookSigningSecret),
		webhook.WithCircuitBreaker(r.breaker),
		webhook.WithOnDelivery(func(res webhook.DeliveryResult) {
			if res.Success {
				return
			}
			r.log.WarnContext(ctx, "webhook attempt failed",
				logger.SubmissionID(id),
				logger.StatusCode(res.StatusCode),
				logger.Attempts(res.Attempt),
				logger.Duration(res.Duration),
				logger.Error(res.Error),
			)
		}),
	}

	d, err := r.sender.Send(ctx, url, body, opts...)
	if err != nil {
		r.log.ErrorContext(ctx, "failed to forward submission",
			logger.Form(string(form.Kind)),
			logger.SubmissionID(id),
			logger.Channel(ChannelWebhook.String()),
			logger.StatusCode(webhook.StatusCode(err)),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrRelayFailed, err)
	}

	r.log.InfoContext(ctx, "submission forwarded",
		logger.Form(string(form.Kind)),
		logger.SubmissionID(id),
		logger.Channel(ChannelWebhook.String()),
		logger.StatusCode(d.StatusCode),
		logger.Attempts(d.Attempts),
		logger.Duration(d.Duration),
	)

	return normalizeReply(d.Body), nil
}

func normalizeReply(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	switch {
	case len(body) == 0:
		return json.RawMessage("null")
	case json.Valid(body):
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}

// Notify emails the submission to the configured recipient. Failures are
// logged and never returned.
func (r *Relay) Notify(ctx context.Context, form Form, id string, s Submission) {
	attrs := []slog.Attr{
		logger.Form(string(form.Kind)),
		logger.SubmissionID(id),
		logger.Channel(ChannelEmail.String()),
	}
	if v := s.Get("email"); v != "" {
		attrs = append(attrs, slog.String("lead_email", sanitizer.MaskEmail(v)))
	}
	if v := s.Get("phone"); v != "" {
		attrs = append(attrs, slog.String("lead_phone", sanitizer.MaskPhone(v)))
	}

	if r.mailer == nil {
		r.log.LogAttrs(ctx, slog.LevelWarn, "email notice skipped: no mailer configured", attrs...)
		return
	}

	// The notice must go out even if the visitor disconnects.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.NotifyTimeout)
	defer cancel()

	notice := Notice{
		SiteName:    r.cfg.SiteName,
		FormLabel:   form.Label,
		Lines:       FormatFields(form, s),
		SubmittedAt: r.now().In(r.cfg.Location()),
	}

	body, err := templates.Render(ctx, notice.HTML())
	if err != nil {
		r.log.LogAttrs(ctx, slog.LevelError, "failed to render email notice", append(attrs, logger.Error(err))...)
		return
	}

	start := time.Now()
	err = r.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   r.cfg.NotifyTo,
		Subject:  sanitizer.PreventHeaderInjection(notice.Subject()),
		BodyHTML: body,
		BodyText: notice.Text(),
		Tag:      "lead-" + string(form.Kind),
	})
	attrs = append(attrs, logger.Duration(time.Since(start)))
	if err != nil {
		r.log.LogAttrs(ctx, slog.LevelError, "failed to send email notice", append(attrs, logger.Error(err))...)
		return
	}

	r.log.LogAttrs(ctx, slog.LevelInfo, "email notice sent", attrs...)
}
