// Package webhook posts JSON payloads to HTTP endpoints and returns their replies.
//
// Sender.Send delivers a payload synchronously with a per-attempt timeout and
// optional retries, backoff, HMAC-SHA256 signing and circuit breaking:
//
//	sender := webhook.NewSender()
//	d, err := sender.Send(ctx, "https://hooks.zapier.com/hooks/catch/1/abc/",
//		json.RawMessage(`{"name":"Jane"}`),
//		webhook.WithTimeout(10*time.Second),
//		webhook.WithNoRetry(),
//	)
//	if err != nil {
//		return err
//	}
//	fmt.Println(d.StatusCode, string(d.Body))
//
// Non-2xx replies are returned as *StatusError wrapped in ErrWebhookDeliveryFailed.
// 4xx replies other than 408, 425 and 429 are not retried.
package webhook
