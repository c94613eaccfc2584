// Package email sends transactional email through Postmark.
//
// NewFromConfig picks the transport: a Postmark client when POSTMARK_SERVER_TOKEN
// is set, otherwise a DevSender that writes every message to disk so local
// runs never send real mail.
//
//	sender, err := email.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "arohm@dmrmedia.org",
//		Subject:  "New Home Valuation Form Submission - Obsidian Denver",
//		BodyHTML: html,
//		BodyText: text,
//		Tag:      "lead-valuation",
//	})
//
// The templates subpackage renders templ components into HTML bodies.
package email
