package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmrmedia/obsidian-landing/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "arohm@dmrmedia.org",
		Subject:  "New Moving Form Submission - Obsidian Denver",
		BodyHTML: "<p>hi</p>",
	}
	require.NoError(t, valid.Validate())

	textOnly := valid
	textOnly.BodyHTML = ""
	textOnly.BodyText = "hi"
	require.NoError(t, textOnly.Validate())

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
	}{
		{"missing recipient", func(p *email.SendEmailParams) { p.SendTo = " " }},
		{"invalid recipient", func(p *email.SendEmailParams) { p.SendTo = "not-an-email" }},
		{"missing subject", func(p *email.SendEmailParams) { p.Subject = "" }},
		{"missing body", func(p *email.SendEmailParams) { p.BodyHTML = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestConfig_From(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DMR Media <team@dmrmedia.org>", email.Config{SenderEmail: "team@dmrmedia.org", SenderName: "DMR Media"}.From())
	assert.Equal(t, "team@dmrmedia.org", email.Config{SenderEmail: "team@dmrmedia.org"}.From())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	dev, err := email.NewFromConfig(email.Config{DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, dev)

	pm, err := email.NewFromConfig(email.Config{PostmarkServerToken: "token", SenderEmail: "team@dmrmedia.org"})
	require.NoError(t, err)
	assert.NotNil(t, pm)

	_, err = email.NewFromConfig(email.Config{PostmarkServerToken: "token", SenderEmail: "nope"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestNewPostmarkClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := email.NewPostmarkClient(email.Config{SenderEmail: "team@dmrmedia.org"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	_, err = email.NewPostmarkClient(email.Config{PostmarkServerToken: "t", SenderEmail: "team@dmrmedia.org", ReplyTo: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	assert.Panics(t, func() { email.MustNewPostmarkClient(email.Config{}) })
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "arohm@dmrmedia.org",
		Subject:  "New Home Valuation Form Submission - Obsidian Denver",
		BodyHTML: "<h2>New Home Valuation Form Submission</h2>",
		BodyText: "Name: Jane",
		Tag:      "lead-valuation",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var meta map[string]string
	for _, e := range entries {
		assert.Contains(t, e.Name(), "lead-valuation")
		if filepath.Ext(e.Name()) == ".json" {
			raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &meta))
		}
	}
	assert.Equal(t, "arohm@dmrmedia.org", meta["send_to"])
	assert.Equal(t, "lead-valuation", meta["tag"])
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := email.NewDevSender(dir).SendEmail(context.Background(), email.SendEmailParams{})
	require.ErrorIs(t, err, email.ErrInvalidParams)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestDevSender_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := email.NewDevSender(t.TempDir()).SendEmail(ctx, email.SendEmailParams{
		SendTo: "a@b.co", Subject: "s", BodyText: "b",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.ErrorIs(t, err, context.Canceled)
}
