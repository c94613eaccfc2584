package email

// Config holds email service configuration.
// Without a Postmark server token messages are written to DevDir instead of sent.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"EMAIL_FROM" envDefault:"team@dmrmedia.org"`
	SenderName           string `env:"EMAIL_FROM_NAME" envDefault:"DMR Media"`
	ReplyTo              string `env:"EMAIL_REPLY_TO"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// From returns the sender address with the display name, if any.
func (c Config) From() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return c.SenderName + " <" + c.SenderEmail + ">"
}
